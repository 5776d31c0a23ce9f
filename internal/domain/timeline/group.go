package timeline

import "time"

// Etiquetas relativas de bucket. El resto de los buckets usa la fecha
// calendario formateada (una etiqueta única por día).
const (
	labelToday     = "Today"
	labelYesterday = "Yesterday"
	labelLastWeek  = "Last Week"

	dateLabelLayout = "January 2, 2006"
)

// GroupByDay agrupa una secuencia (ya filtrada) en buckets de fecha
// relativos a now. Función pura: sin reloj interno ni estado; mismos
// (events, now) producen siempre el mismo agrupado, y variar solo now
// reclasifica correctamente los mismos eventos.
//
// Reglas, en orden de prioridad sobre la fecha calendario del evento:
//   - fecha == hoy            → "Today"
//   - fecha == ayer           → "Yesterday"
//   - fecha >= hoy - 7 días   → "Last Week"
//   - resto                   → fecha formateada ("January 2, 2006")
//
// Las etiquetas conservan el orden de primera aparición del input (con
// input más-reciente-primero, "Today" queda naturalmente adelante).
func GroupByDay(events []Event, now time.Time) []Group {
	today := startOfDay(now)
	yesterday := today.AddDate(0, 0, -1)
	lastWeekStart := today.AddDate(0, 0, -7)

	order := make([]string, 0)
	buckets := make(map[string][]Event)

	for _, e := range events {
		day := startOfDay(e.Timestamp.In(now.Location()))

		var label string
		switch {
		case day.Equal(today):
			label = labelToday
		case day.Equal(yesterday):
			label = labelYesterday
		case !day.Before(lastWeekStart):
			label = labelLastWeek
		default:
			label = day.Format(dateLabelLayout)
		}

		if _, ok := buckets[label]; !ok {
			order = append(order, label)
		}
		buckets[label] = append(buckets[label], e)
	}

	out := make([]Group, 0, len(order))
	for _, label := range order {
		evs := buckets[label]
		// Re-ordenar dentro del bucket aunque el input venga ordenado:
		// el filtrado upstream no garantiza orden local por sí solo.
		sortEventsDesc(evs)
		out = append(out, Group{Label: label, Events: evs})
	}
	return out
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
