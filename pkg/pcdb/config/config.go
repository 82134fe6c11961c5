package config

import (
	"sync"

	"github.com/led-dino/playacamp/pkg/config"
)

const minTxRetry = 3

var (
	txRetryOnce sync.Once
	txRetry     int
)

// GetTxRetry is the number of attempts WithTxRetry makes. It is read once from
// PC_TX_RETRY and never drops below 3.
func GetTxRetry() int {
	txRetryOnce.Do(func() {
		txRetry = config.GetIntKeyWithDefault(config.TxRetryKey, minTxRetry)
		if txRetry < minTxRetry {
			txRetry = minTxRetry
		}
	})

	return txRetry
}
