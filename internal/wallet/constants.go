package wallet

// Currencies the platform issues wallets for.
const (
	CurrencyARS  = "ARS"
	CurrencyUSD  = "USD"
	CurrencyUSDC = "USDC"
	CurrencyBRL  = "BRL"
)

// SupportedCurrencies lists every currency code a wallet may carry, in
// report ordering.
var SupportedCurrencies = []string{CurrencyARS, CurrencyUSD, CurrencyUSDC, CurrencyBRL}

// Supported reports whether code is a known currency.
func Supported(code string) bool {
	for _, c := range SupportedCurrencies {
		if c == code {
			return true
		}
	}
	return false
}
