package notifications

import (
	"bytes"
	"fmt"
	"html/template"

	"fulfillment/internal/core/domain/model/order"
)

var emailTemplates = template.Must(template.New("email").Parse(`
{{define "layout"}}<!DOCTYPE html>
<html><body style="font-family: Arial, sans-serif; background: #f7f7f7; padding: 24px;">
<div style="max-width: 600px; margin: auto; background: #fff; border-radius: 8px; overflow: hidden;">
<div style="background: #4f8cff; color: #fff; padding: 20px; text-align: center;"><h2>{{.Title}}</h2></div>
<div style="padding: 20px;">{{template "body" .}}</div>
<div style="background: #f7f7f7; color: #888; padding: 10px; text-align: center; font-size: 13px;">Thank you for your business.</div>
</div></body></html>{{end}}

{{define "order_confirmation"}}{{template "layout" .}}{{end}}
{{define "order_status_changed"}}{{template "layout" .}}{{end}}
`))

var bodies = map[string]string{
	"order_confirmation": `{{define "body"}}<p>Thank you for your order, {{.Name}}!</p>
<h3>Order {{.Number}}</h3>
<ul>{{range .Lines}}<li>{{.Quantity}} &times; {{.ProductID}}: {{.Total}}</li>{{end}}</ul>
<p><b>Total:</b> {{.Total}}</p>{{end}}`,
	"order_status_changed": `{{define "body"}}<p>Hello {{.Name}},</p>
<p>Order <b>{{.Number}}</b> is now <b>{{.Status}}</b>.</p>{{end}}`,
}

type emailLine struct {
	ProductID string
	Quantity  int
	Total     string
}

type emailData struct {
	Title  string
	Name   string
	Number string
	Status string
	Total  string
	Lines  []emailLine
}

func render(name string, data emailData) (string, error) {
	t, err := emailTemplates.Clone()
	if err != nil {
		return "", err
	}
	if _, err = t.Parse(bodies[name]); err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err = t.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("render %s email: %w", name, err)
	}
	return buf.String(), nil
}

// OrderConfirmationEmail renders the confirmation sent to the ordering store.
func OrderConfirmationEmail(o *order.Order) func(name string) (string, string, error) {
	return func(name string) (string, string, error) {
		data := emailData{
			Title:  "Order Confirmation",
			Name:   name,
			Number: o.Number(),
			Total:  o.Total().String(),
		}
		for _, item := range o.Items() {
			data.Lines = append(data.Lines, emailLine{
				ProductID: item.ProductID().String(),
				Quantity:  item.Quantity(),
				Total:     item.Total().String(),
			})
		}
		html, err := render("order_confirmation", data)
		return "Your order " + o.Number() + " is confirmed", html, err
	}
}

// StatusChangedEmail renders the status update sent to the ordering store.
func StatusChangedEmail(o *order.Order) func(name string) (string, string, error) {
	return func(name string) (string, string, error) {
		html, err := render("order_status_changed", emailData{
			Title:  "Order Update",
			Name:   name,
			Number: o.Number(),
			Status: o.Status().String(),
		})
		return fmt.Sprintf("Order %s is %s", o.Number(), o.Status()), html, err
	}
}
