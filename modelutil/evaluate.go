package modelutil

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/YuminosukeSato/airbnb-price/metrics"
	"github.com/YuminosukeSato/airbnb-price/pkg/log"
)

// Evaluate は RMSE と R² を計算してログに出す。
// 長さの不一致などのエラーは metrics のものをそのまま返す。
func Evaluate(yTrue, yPred *mat.VecDense) (rmse, r2 float64, err error) {
	rmse, err = metrics.RMSE(yTrue, yPred)
	if err != nil {
		return 0, 0, err
	}
	r2, err = metrics.R2Score(yTrue, yPred)
	if err != nil {
		return 0, 0, err
	}

	log.GetLogger().Info(fmt.Sprintf("RMSE: %.2f, R²: %.2f", rmse, r2),
		log.ComponentKey, "modelutil",
		log.OperationKey, log.OperationEvaluate,
		log.RMSEKey, rmse,
		log.R2ScoreKey, r2,
	)
	return rmse, r2, nil
}
