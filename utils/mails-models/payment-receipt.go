package mailsmodels

import (
	"fmt"
	"predictive-hub-backend/utils"
)

func PaymentReceipt(email string, planName string, amount int, currency string, reference string) {
	subject := "Subject: Your Predictive Hub subscription is active \r\n"
	mime := "MIME-version: 1.0;\r\nContent-Type: text/html; charset=\"UTF-8\";\r\n\r\n"
	body := fmt.Sprintf(`
	<div style="background-color: #0F766E; width: 100%%; min-height: 300px; padding: 30px; box-sizing:border-box">
		<table style="background-color: #ffffff; width: 100%%;  min-height: 300px;">
			<tbody>
				<tr>
					<td><h1 style="text-align:center">Payment received</h1></td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">Your %s plan is now active. Amount charged: %.2f %s.</td>
				</tr>
				<tr>
					<td style="text-align:center; padding-bottom: 30px;">
						<p style="font-weight: bold; color: #0F766E; text-align:center;">Reference: %s</p>
					</td>
				</tr>
			</tbody>
		</table>
	</div>
`, planName, float64(amount)/100, currency, reference)

	message := []byte(subject + mime + body)

	utils.SendMail(email, message)
}
