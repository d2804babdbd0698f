package util

import (
	"fmt"

	"github.com/dustin/go-humanize"
)

func MicroAlgoToAlgoString(microAlgos uint64) string {
	return fmt.Sprintf("%v Algo", humanize.Commaf(float64(microAlgos)/1_000_000))
}

func MicroAlgoString(microAlgos uint64) string {
	return fmt.Sprintf("%v µAlgo", humanize.Comma(int64(microAlgos)))
}

func FundsString(amount uint64) string {
	return humanize.Comma(int64(amount))
}
