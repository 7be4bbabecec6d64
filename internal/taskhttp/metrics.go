package taskhttp

import "github.com/prometheus/client_golang/prometheus"

var (
	tasksCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "taskbook_tasks_created_total",
		Help: "Total number of tasks created via the API",
	})

	overdueTasks = prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "taskbook_overdue_tasks",
		Help: "Overdue tasks observed by the most recent list request",
	})
)

func init() {
	prometheus.MustRegister(tasksCreatedTotal, overdueTasks)
}
