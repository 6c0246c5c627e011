package salary

type penaltyBracket struct {
	from, to int
	days     int
}

// Late arrivals are charged in steps of five.
var penaltyBrackets = []penaltyBracket{
	{5, 9, 1},
	{10, 14, 2},
	{15, 19, 3},
	{20, 24, 4},
	{25, 29, 5},
	{30, 31, 6},
}

const maxPenaltyDays = 6

// ExtraLeaveForLateArrivals maps unapproved late arrivals in a month to extra
// leave days. Counts above 31 cannot occur in a real month and are capped.
func ExtraLeaveForLateArrivals(count int) int {
	for _, b := range penaltyBrackets {
		if count >= b.from && count <= b.to {
			return b.days
		}
	}
	if count > penaltyBrackets[len(penaltyBrackets)-1].to {
		return maxPenaltyDays
	}
	return 0
}
