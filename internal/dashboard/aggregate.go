package dashboard

import (
	"fmt"
	"sort"
	"time"

	"tableside/internal/domain"
)

type Bucket struct {
	Name     string  `json:"name"`
	Earnings float64 `json:"earnings"`
	Orders   int     `json:"orders"`
}

type Product struct {
	Name    string  `json:"name"`
	Sales   int     `json:"sales"`
	Revenue float64 `json:"revenue"`
}

type SoldItem struct {
	Item     string  `json:"item"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"` // revenue for the item, not unit price
}

type Earnings struct {
	Daily                   []Bucket   `json:"daily"`
	Weekly                  []Bucket   `json:"weekly"`
	Monthly                 []Bucket   `json:"monthly"`
	TotalRevenue            float64    `json:"totalRevenue"`
	TotalOrders             int        `json:"totalOrders"`
	TopProducts             []Product  `json:"topProducts"`
	TotalItems              int        `json:"totalItems"`
	CurrentMonthRevenue     float64    `json:"currentMonthRevenue"`
	CurrentMonthOrdersCount int        `json:"currentMonthOrdersCount"`
	TodaySoldItems          []SoldItem `json:"todaySoldItems"`
}

var weekdayOrder = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// Aggregate computes the sales dashboard over a restaurant's full order
// history. Pure function of (orders, now) so reporting windows are testable
// against a fixed clock.
func Aggregate(orders []domain.Order, now time.Time) Earnings {
	e := Earnings{
		Daily:          make([]Bucket, 0, 7),
		Weekly:         make([]Bucket, 0, 4),
		Monthly:        make([]Bucket, 0, 6),
		TopProducts:    []Product{},
		TodaySoldItems: []SoldItem{},
	}

	// Daily: last 7 days presented in fixed Sun..Sat order.
	daily := make(map[string]Bucket, 7)
	for i := 6; i >= 0; i-- {
		day := now.AddDate(0, 0, -i)
		name := day.Format("Mon")
		b := Bucket{Name: name}
		sumRange(orders, startOfDay(day), endOfDay(day), &b)
		daily[name] = b
	}
	for _, name := range weekdayOrder {
		b, ok := daily[name]
		if !ok {
			b = Bucket{Name: name}
		}
		e.Daily = append(e.Daily, b)
	}

	// Weekly: last 4 calendar weeks ending with the current one.
	for i := 3; i >= 0; i-- {
		start := startOfDay(now.AddDate(0, 0, -int(now.Weekday())-i*7))
		end := endOfDay(start.AddDate(0, 0, 6))
		b := Bucket{Name: weekName(4 - i)}
		sumRange(orders, start, end, &b)
		e.Weekly = append(e.Weekly, b)
	}

	// Monthly: last 6 months, oldest first.
	for i := 5; i >= 0; i-- {
		month := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, -i, 0)
		end := endOfDay(month.AddDate(0, 1, -1))
		b := Bucket{Name: month.Format("Jan")}
		sumRange(orders, month, end, &b)
		e.Monthly = append(e.Monthly, b)
	}

	// Totals and top products over the whole history.
	products := map[string]*Product{}
	for _, o := range orders {
		e.TotalRevenue += o.Subtotal
		e.TotalOrders++
		for _, it := range o.Items {
			e.TotalItems += it.Quantity
			p, ok := products[it.Name]
			if !ok {
				p = &Product{Name: it.Name}
				products[it.Name] = p
			}
			p.Sales += it.Quantity
			p.Revenue += it.UnitPrice * float64(it.Quantity)
		}
	}
	for _, p := range products {
		e.TopProducts = append(e.TopProducts, *p)
	}
	sort.Slice(e.TopProducts, func(i, j int) bool {
		if e.TopProducts[i].Sales != e.TopProducts[j].Sales {
			return e.TopProducts[i].Sales > e.TopProducts[j].Sales
		}
		return e.TopProducts[i].Name < e.TopProducts[j].Name
	})
	if len(e.TopProducts) > 5 {
		e.TopProducts = e.TopProducts[:5]
	}

	// Current calendar month.
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	monthEnd := endOfDay(monthStart.AddDate(0, 1, -1))
	var cur Bucket
	sumRange(orders, monthStart, monthEnd, &cur)
	e.CurrentMonthRevenue = cur.Earnings
	e.CurrentMonthOrdersCount = cur.Orders

	// Today's sold items count completed orders only.
	sold := map[string]*SoldItem{}
	var soldNames []string
	for _, o := range orders {
		if o.Status != domain.StatusCompleted {
			continue
		}
		if !within(o.CreatedAt, startOfDay(now), endOfDay(now)) {
			continue
		}
		for _, it := range o.Items {
			s, ok := sold[it.Name]
			if !ok {
				s = &SoldItem{Item: it.Name}
				sold[it.Name] = s
				soldNames = append(soldNames, it.Name)
			}
			s.Quantity += it.Quantity
			s.Price += it.UnitPrice * float64(it.Quantity)
		}
	}
	for _, name := range soldNames {
		e.TodaySoldItems = append(e.TodaySoldItems, *sold[name])
	}

	return e
}

func weekName(n int) string {
	return fmt.Sprintf("Week %d", n)
}

func sumRange(orders []domain.Order, start, end time.Time, b *Bucket) {
	for _, o := range orders {
		if within(o.CreatedAt, start, end) {
			b.Earnings += o.Subtotal
			b.Orders++
		}
	}
}

func within(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
