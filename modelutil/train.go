package modelutil

import (
	"fmt"
	"strings"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/airbnb-price/core/model"
	"github.com/YuminosukeSato/airbnb-price/metrics"
	"github.com/YuminosukeSato/airbnb-price/pkg/log"
)

// TrainAndEvaluate はモデルを学習させ、テストデータで予測と評価を行う。
// Fit と Predict のエラーは何も付け加えずに返す。
func TrainAndEvaluate(m model.Regressor, XTrain, XTest mat.Matrix, yTrain, yTest *mat.VecDense) (*mat.VecDense, float64, float64, error) {
	name := modelName(m)
	logger := log.GetLogger().With(log.ComponentKey, "modelutil", log.ModelNameKey, name)

	logger.Info(fmt.Sprintf("Training %s model...", name), log.PhaseKey, log.PhaseTraining)
	start := time.Now()
	if err := m.Fit(XTrain, yTrain); err != nil {
		return nil, 0, 0, err
	}
	logger.Info("Training complete",
		log.OperationKey, log.OperationFit,
		log.DurationMsKey, time.Since(start).Milliseconds(),
	)

	pred, err := m.Predict(XTest)
	if err != nil {
		return nil, 0, 0, err
	}
	yPred, err := metrics.ColumnVector(pred)
	if err != nil {
		return nil, 0, 0, err
	}

	rmse, r2, err := Evaluate(yTest, yPred)
	if err != nil {
		return nil, 0, 0, err
	}
	return yPred, rmse, r2, nil
}

// modelName は "*linear.LinearRegression" から "LinearRegression" を取り出す
func modelName(m model.Regressor) string {
	name := fmt.Sprintf("%T", m)
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	return strings.TrimLeft(name, "*")
}
