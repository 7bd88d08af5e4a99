package catalog

import "math"

// Rating 单条评论的评分(1-5)，热度统计只关心评分
type Rating struct {
	BookID uint
	Stars  int
}

// Popularity 评论数与平均分，无评论时均为0
type Popularity struct {
	ReviewCount   int64
	AverageRating float64
}

// RoundedAverage 平均分保留两位小数(对外展示用)
func (p Popularity) RoundedAverage() float64 {
	return math.Round(p.AverageRating*100) / 100
}

// AggregatePopularity 按图书汇总评论数与平均分
func AggregatePopularity(ratings []Rating) map[uint]Popularity {
	sums := make(map[uint]int64)
	counts := make(map[uint]int64)
	for _, r := range ratings {
		sums[r.BookID] += int64(r.Stars)
		counts[r.BookID]++
	}

	result := make(map[uint]Popularity, len(counts))
	for id, n := range counts {
		result[id] = Popularity{
			ReviewCount:   n,
			AverageRating: float64(sums[id]) / float64(n),
		}
	}
	return result
}
