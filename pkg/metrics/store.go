package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// Orders accepted through POST /api/orders
	OrdersCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kledje_orders_created_total",
		Help: "Total number of orders placed",
	})

	OrderStatusChanges = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kledje_order_status_changes_total",
		Help: "Order status transitions by target status",
	}, []string{"status"})

	ImagesUploaded = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "kledje_images_uploaded_total",
		Help: "Total number of images processed and stored",
	})

	EmailsSent = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "kledje_emails_sent_total",
		Help: "Transactional emails by template and result",
	}, []string{"template", "result"})
)

func Init() {
	prometheus.MustRegister(
		OrdersCreated,
		OrderStatusChanges,
		ImagesUploaded,
		EmailsSent,
	)
}
