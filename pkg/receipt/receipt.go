package receipt

import (
	"bytes"
	"html/template"
	"time"

	"jpskating.in/store-api/pkg/models"
	"jpskating.in/store-api/pkg/mongo"
)

type Line struct {
	Name     string
	Quantity int
	Price    float64
	Subtotal float64
}

type Data struct {
	OrderNumber   string
	OrderDate     string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
	Lines         []Line
	Memberships   []string
	Total         float64
	Status        string
	PaymentStatus string
	Address       *models.ShippingAddress
}

var receiptTmpl = template.Must(template.New("receipt").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Receipt {{.OrderNumber}}</title>
<style>
body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; color: #1f2937; }
h1 { font-size: 22px; border-bottom: 2px solid #2563eb; padding-bottom: 8px; }
table { width: 100%; border-collapse: collapse; margin: 16px 0; }
th, td { text-align: left; padding: 8px; border-bottom: 1px solid #e5e7eb; }
th { background: #f9fafb; }
.total { font-weight: bold; font-size: 16px; }
.meta { color: #6b7280; font-size: 13px; }
</style>
</head>
<body>
<h1>JP Skating Store — Order Receipt</h1>
<p class="meta">Order {{.OrderNumber}} &middot; {{.OrderDate}} &middot; {{.Status}} / payment {{.PaymentStatus}}</p>
<p>{{.CustomerName}}{{if .CustomerEmail}} &lt;{{.CustomerEmail}}&gt;{{end}}{{if .CustomerPhone}} &middot; {{.CustomerPhone}}{{end}}</p>
{{if .Address}}<p class="meta">{{.Address.Address}}, {{.Address.City}}, {{.Address.State}} {{.Address.Zip}}</p>{{end}}
<table>
<tr><th>Item</th><th>Qty</th><th>Price</th><th>Subtotal</th></tr>
{{range .Lines}}<tr><td>{{.Name}}</td><td>{{.Quantity}}</td><td>{{printf "%.2f" .Price}}</td><td>{{printf "%.2f" .Subtotal}}</td></tr>
{{end}}{{range .Memberships}}<tr><td>{{.}} (membership)</td><td>1</td><td></td><td></td></tr>
{{end}}<tr><td colspan="3" class="total">Total</td><td class="total">{{printf "%.2f" .Total}}</td></tr>
</table>
<p class="meta">Thank you for skating with us.</p>
</body>
</html>
`))

// Render builds the receipt HTML for an order. Physical line items come from
// the order_items rows; membership purchases are listed from the plans the
// order notes reference.
func Render(order *mongo.OrderWithItems, productNames map[int64]string, membershipNames []string) (string, error) {
	data := Data{
		OrderNumber:   order.OrderNumber,
		OrderDate:     order.CreatedAt.Format(time.RFC1123),
		CustomerEmail: order.CustomerEmail,
		CustomerPhone: order.CustomerPhone,
		Memberships:   membershipNames,
		Total:         order.TotalAmount,
		Status:        order.Status,
		PaymentStatus: order.PaymentStatus,
		Address:       order.ShippingAddress,
	}
	if order.ShippingAddress != nil {
		data.CustomerName = order.ShippingAddress.Name
	}

	for _, item := range order.Items {
		name := productNames[item.ProductID]
		if name == "" {
			name = "Item"
		}
		data.Lines = append(data.Lines, Line{
			Name:     name,
			Quantity: item.Quantity,
			Price:    item.Price,
			Subtotal: item.Price * float64(item.Quantity),
		})
	}

	var buf bytes.Buffer
	if err := receiptTmpl.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
