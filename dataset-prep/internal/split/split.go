package split

import (
	"fmt"
	"math"
	"math/rand"
)

// Options параметры разбиения датасета
type Options struct {
	TrainRatio float64
	ValRatio   float64
	TestRatio  float64
	Seed       int64
}

// DefaultOptions разбиение 70/15/15 с фиксированным seed
func DefaultOptions() Options {
	return Options{TrainRatio: 0.7, ValRatio: 0.15, TestRatio: 0.15, Seed: 42}
}

// StratifiedThreeWay разбивает индексы строк на train/validation/test,
// сохраняя распределение метки в каждой части. Результат детерминирован
// при фиксированном seed.
func StratifiedThreeWay(labels []string, opt Options) (train, val, test []int, err error) {
	if len(labels) == 0 {
		return nil, nil, nil, fmt.Errorf("пустой датасет")
	}
	total := opt.TrainRatio + opt.ValRatio + opt.TestRatio
	if math.Abs(total-1.0) > 1e-9 {
		return nil, nil, nil, fmt.Errorf("доли разбиения в сумме дают %g, а не 1", total)
	}

	// Группируем индексы по значению метки
	groups := map[string][]int{}
	order := []string{}
	for i, label := range labels {
		if _, ok := groups[label]; !ok {
			order = append(order, label)
		}
		groups[label] = append(groups[label], i)
	}

	rng := rand.New(rand.NewSource(opt.Seed))

	// Внутри каждой группы перемешиваем и режем по долям
	for _, label := range order {
		indices := groups[label]
		rng.Shuffle(len(indices), func(i, j int) {
			indices[i], indices[j] = indices[j], indices[i]
		})

		n := len(indices)
		nTest := int(math.Round(float64(n) * opt.TestRatio))
		nVal := int(math.Round(float64(n) * opt.ValRatio))
		if nTest+nVal > n {
			nVal = n - nTest
		}

		test = append(test, indices[:nTest]...)
		val = append(val, indices[nTest:nTest+nVal]...)
		train = append(train, indices[nTest+nVal:]...)
	}

	return train, val, test, nil
}

// LabelCounts считает распределение метки по набору индексов
func LabelCounts(labels []string, indices []int) map[string]int {
	counts := map[string]int{}
	for _, i := range indices {
		counts[labels[i]]++
	}
	return counts
}
