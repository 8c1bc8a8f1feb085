package planner

// TargetFor 將每日目標依餐次比例分配；不做任何取整
func TargetFor(daily DailyTargets, slot string, dist Distribution) (SlotTarget, error) {
	fraction, ok := dist.Fraction(slot)
	if !ok {
		return SlotTarget{}, configErrorf(ErrUnknownSlot, "%q not in distribution", slot)
	}
	return SlotTarget{
		Calories: daily.Calories * fraction,
		Protein:  daily.Protein * fraction,
		Carbs:    daily.Carbs * fraction,
		Fat:      daily.Fat * fraction,
	}, nil
}
