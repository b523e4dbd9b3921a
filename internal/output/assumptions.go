package output

// DefaultAssumptions lists the modeling simplifications rendered in detailed outputs.
var DefaultAssumptions = []string{
	"Standard deduction only; no itemized deductions or AMT adjustments besides ISO bargain element",
	"Short-term gains are taxed as ordinary income",
	"Capital gains tier is picked by ordinary income alone",
	"AMT has no separate capital gains rate and no minimum tax credit",
	"Max ISO estimate varies only the most recent exercise",
}
