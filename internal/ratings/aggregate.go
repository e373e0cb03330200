package ratings

import "math"

// AggregateRatings - среднее значение, округленное до одного знака (половина вверх).
// Для пустого набора возвращает 0.
func AggregateRatings(values []int) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0
	for _, v := range values {
		sum += v
	}
	// mean*10 считаем одним делением, чтобы не терять точность на .x5
	tenths := float64(sum*10) / float64(len(values))
	return math.Floor(tenths+0.5) / 10
}

// Aggregate считает общий рейтинг по обогащенным отзывам.
func Aggregate(reviews []EnrichedReview) float64 {
	values := make([]int, 0, len(reviews))
	for _, r := range reviews {
		values = append(values, r.Rating)
	}
	return AggregateRatings(values)
}
