package orders

import (
	"bytes"
	"fmt"
	"html/template"

	"kledje/domain"
)

var statusLabels = map[string]string{
	domain.OrderStatusPlaced:     "تم استلام الطلب",
	domain.OrderStatusProcessing: "قيد التجهيز",
	domain.OrderStatusShipped:    "تم الشحن",
	domain.OrderStatusDelivered:  "تم التوصيل",
	domain.OrderStatusCancelled:  "ملغي",
}

func StatusLabel(status string) string {
	if label, ok := statusLabels[status]; ok {
		return label
	}
	return status
}

func paymentLabel(method string) string {
	if method == domain.PaymentCOD {
		return "الدفع عند الاستلام"
	}
	return method
}

var confirmationTmpl = template.Must(template.New("confirmation").Parse(`<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f78fb3;">شكراً لك على طلبك!</h2>
  <p>عزيزتي {{.FirstName}},</p>
  <p>تم استلام طلبك بنجاح ونحن نعمل على تجهيزه.</p>
  <div style="background: #f9f9f9; padding: 20px; margin: 20px 0; border-radius: 8px;">
    <h3>تفاصيل الطلب:</h3>
    <p><strong>رقم الطلب:</strong> {{.OrderID}}</p>
    <p><strong>المجموع:</strong> {{.Total}} ج.م</p>
    <p><strong>طريقة الدفع:</strong> {{.Payment}}</p>
  </div>
  <p>سيتم التواصل معك قريباً لتأكيد الطلب وتحديد موعد التوصيل.</p>
  <p>شكراً لثقتك في Kledje!</p>
</div>`))

var statusTmpl = template.Must(template.New("status").Parse(`<div dir="rtl" style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #f78fb3;">تحديث حالة طلبك</h2>
  <p>عزيزتي {{.FirstName}},</p>
  <p>تم تحديث حالة طلبك #{{.OrderID}}</p>
  <div style="background: #f9f9f9; padding: 20px; margin: 20px 0; border-radius: 8px;">
    <h3>الحالة الحالية: {{.Status}}</h3>
  </div>
  <p>يمكنك تتبع طلبك في أي وقت من خلال موقعنا.</p>
  <p>شكراً لثقتك في Kledje!</p>
</div>`))

type emailData struct {
	FirstName string
	OrderID   string
	Total     string
	Payment   string
	Status    string
}

// confirmationEmail reports ok=false when the customer left no email address.
func confirmationEmail(order *domain.Order) (domain.EmailMessage, bool, error) {
	customer := order.CustomerInfo.Data()
	if customer.Email == "" {
		return domain.EmailMessage{}, false, nil
	}

	data := emailData{
		FirstName: customer.FirstName,
		OrderID:   order.ID,
		Total:     fmt.Sprintf("%.2f", order.Total),
		Payment:   paymentLabel(order.PaymentMethod),
	}

	html, err := render(confirmationTmpl, data)
	if err != nil {
		return domain.EmailMessage{}, false, err
	}

	return domain.EmailMessage{
		ToName:  customer.FirstName + " " + customer.LastName,
		ToEmail: customer.Email,
		Subject: "تأكيد الطلب #" + order.ID,
		Text:    fmt.Sprintf("تم استلام طلبك رقم %s بنجاح. المجموع: %s ج.م", order.ID, data.Total),
		HTML:    html,
	}, true, nil
}

func statusEmail(order *domain.Order) (domain.EmailMessage, bool, error) {
	customer := order.CustomerInfo.Data()
	if customer.Email == "" {
		return domain.EmailMessage{}, false, nil
	}

	data := emailData{
		FirstName: customer.FirstName,
		OrderID:   order.ID,
		Status:    StatusLabel(order.Status),
	}

	html, err := render(statusTmpl, data)
	if err != nil {
		return domain.EmailMessage{}, false, err
	}

	return domain.EmailMessage{
		ToName:  customer.FirstName + " " + customer.LastName,
		ToEmail: customer.Email,
		Subject: "تحديث حالة الطلب #" + order.ID,
		Text:    fmt.Sprintf("حالة طلبك %s: %s", order.ID, data.Status),
		HTML:    html,
	}, true, nil
}

func render(t *template.Template, data emailData) (string, error) {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
