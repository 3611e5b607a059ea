package mail

import (
	"fmt"
	"html"

	"github.com/horndawg/launchpad/internal/models"
)

const OrderConfirmationSubject = "Your Horn Dawg Drinks Reservation Confirmation 🎉"

// OrderConfirmationBody returns the HTML confirmation sent to the customer
// after a reservation is stored.
func OrderConfirmationBody(order *models.Order) string {
	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <style>
    body { font-family: Arial, sans-serif; line-height: 1.6; color: #333333; }
    .container { max-width: 600px; margin: 0 auto; padding: 20px; }
    .header { background: linear-gradient(135deg, #0f172a 0%%, #991b1b 100%%); color: #ffffff; padding: 30px; text-align: center; }
    .content { background: #f9f9f9; padding: 30px; border-radius: 10px; margin: 20px 0; }
    .order-details { background: #ffffff; padding: 20px; border-radius: 8px; margin: 20px 0; }
    .detail-row { display: flex; justify-content: space-between; padding: 10px 0; border-bottom: 1px solid #eeeeee; }
    .total { font-size: 20px; font-weight: bold; color: #991b1b; }
    .footer { text-align: center; color: #666666; font-size: 12px; padding: 20px; }
  </style>
</head>
<body>
  <div class="container">
    <div class="header">
      <h1>THANK YOU FOR YOUR RESERVATION!</h1>
    </div>
    <div class="content">
      <h2>Hi %s!</h2>
      <p>You're officially a Horn Dawg, and we're excited to have you on board!</p>
      <p>You are now a participant in the <strong>€20,000 Launch Jackpot</strong>.</p>
      <div class="order-details">
        <h3>Your Reservation Details:</h3>
        <div class="detail-row"><span><strong>Reference:</strong></span><span>%s</span></div>
        <div class="detail-row"><span><strong>Product:</strong></span><span>%s</span></div>
        <div class="detail-row"><span><strong>Quantity:</strong></span><span>%s</span></div>
        <div class="detail-row"><span><strong>Total Price:</strong></span><span class="total">€%s</span></div>
      </div>
      <p>Your entry is confirmed. Wishing you the best of luck!</p>
      <p style="margin-top: 30px;">
        <strong>Important:</strong> This reservation is free and non-binding.
        A purchase is neither required for participation nor does it increase the chances of winning.
      </p>
    </div>
    <div class="footer">
      <p>© Horn Dawg Drinks. All rights reserved.</p>
    </div>
  </div>
</body>
</html>`,
		html.EscapeString(order.Name),
		html.EscapeString(order.PublicID.String()),
		html.EscapeString(order.Product),
		html.EscapeString(order.Quantity),
		order.TotalPrice.StringFixed(2),
	)
}
