package utils

import (
	"github.com/bittarwork/hospital-management-system-sub001/config"
	"github.com/bittarwork/hospital-management-system-sub001/models"
	"gopkg.in/gomail.v2"
)

// SendPaymentReceipt emails a receipt for a recorded payment. Sending is
// disabled when no SMTP host is configured.
func SendPaymentReceipt(smtp config.SMTPConfig, toEmail string, invoice *models.Invoice, payment models.Payment) error {
	if smtp.Host == "" || toEmail == "" {
		return nil
	}

	from := smtp.From
	if from == "" {
		from = smtp.User
	}

	m := gomail.NewMessage()
	m.SetHeader("From", from)
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", "Payment Receipt - Invoice "+invoice.InvoiceNumber)

	m.SetBody("text/plain",
		"We received your payment of "+payment.Amount.StringFixed(2)+
			" on invoice "+invoice.InvoiceNumber+
			". Remaining balance: "+invoice.RemainingBalance.StringFixed(2)+".")

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Payment Receipt</title>
		<style>
			body {
				font-family: Arial, sans-serif;
				background-color: #f4f4f4;
				margin: 0;
				padding: 0;
			}
			.container {
				background-color: #ffffff;
				margin: 20px auto;
				padding: 20px;
				border-radius: 8px;
				box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);
				max-width: 600px;
			}
			h1 {
				color: #333333;
			}
			p {
				color: #666666;
			}
			.amount {
				font-weight: bold;
				color: #007bff;
			}
		</style>
	</head>
	<body>
		<div class="container">
			<h1>Payment Receipt</h1>
			<p>Invoice: ` + invoice.InvoiceNumber + `</p>
			<p>Amount received: <span class="amount">` + payment.Amount.StringFixed(2) + `</span></p>
			<p>Remaining balance: ` + invoice.RemainingBalance.StringFixed(2) + `</p>
			<p>Thank you for your payment.</p>
		</div>
	</body>
	</html>
	`
	m.AddAlternative("text/html", htmlBody)

	d := gomail.NewDialer(smtp.Host, smtp.Port, smtp.User, smtp.Password)
	return d.DialAndSend(m)
}
