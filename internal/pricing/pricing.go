// Package pricing содержит чистый расчёт тарифа по количеству занятий в месяц.
package pricing

// Quote — результат расчёта: пакет, его полная цена и цена за занятие.
// PricePerSession — фиксированная цифра из прайса, а не total/n.
type Quote struct {
	Tier            string `json:"tier"`
	TotalPrice      int    `json:"total_price"`
	PricePerSession int    `json:"price_per_session"`
}

// Действующий прайс академии, границы диапазонов включительно:
//
//	| занятий в месяц | пакет              | всего | за занятие |
//	|-----------------|--------------------|-------|------------|
//	| 0               | none               | 0     | 0          |
//	| 1               | Drop-in            | 700   | 700        |
//	| 2–6             | 4-session package  | 2500  | 625        |
//	| 7–10            | 8-session package  | 4000  | 500        |
//	| 11–14           | 12-session package | 5200  | 433        |
//	| 15–18           | 16-session package | 6500  | 406        |
//	| 19+             | 19+ package        | 7000  | 350        |
//
// Названия пакетов не совпадают с диапазонами (пакет «4 занятия» покрывает
// 2–6) — так в действующем прайсе; менять ярлыки — продуктовое решение.
var tiers = []struct {
	upTo            int // верхняя граница диапазона включительно
	name            string
	totalPrice      int
	pricePerSession int
}{
	{0, "none", 0, 0},
	{1, "Drop-in", 700, 700},
	{6, "4-session package", 2500, 625},
	{10, "8-session package", 4000, 500},
	{14, "12-session package", 5200, 433},
	{18, "16-session package", 6500, 406},
}

// ForSessionCount возвращает тариф для n занятий в месяц.
// Первый подходящий диапазон выигрывает; n < 0 трактуется как 0.
func ForSessionCount(n int) Quote {
	if n < 0 {
		n = 0
	}
	for _, t := range tiers {
		if n <= t.upTo {
			return Quote{Tier: t.name, TotalPrice: t.totalPrice, PricePerSession: t.pricePerSession}
		}
	}
	return Quote{Tier: "19+ package", TotalPrice: 7000, PricePerSession: 350}
}
