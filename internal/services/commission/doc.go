/*
Package commission implements the tiered platform fee used for contractor payouts.

A contractor's trailing monthly volume selects a Tier; the Tier's rate applied to the
transaction amount gives the platform fee, floored at a minimum fee. All money is in
integer cents and rates are decimals in [0, 1].

Usage:

	calc, err := commission.NewCalculator(commission.DefaultTiers())
	if err != nil {
	    return err
	}

	res, err := calc.CalculateFee(10000, 300000)
	// res.TierName == "Growing", res.FeeAmount == 2500, res.NetAmount == 7500

Tables are validated once at construction: they must be non-empty, start at 0, be contiguous
(max+1 == next min) and end in exactly one unbounded tier. Use a Registry to swap
tables at runtime.
*/
package commission
