package contracts

import "errors"

var (
	// ErrInvalidSymbol is returned for an empty or malformed ticker
	ErrInvalidSymbol = errors.New("invalid symbol")

	// ErrNoPriceData means no current price could be fetched
	ErrNoPriceData = errors.New("could not fetch data")

	// ErrInsufficientHistory means too few bars for the requested computation
	ErrInsufficientHistory = errors.New("insufficient price history")
)
