package services

import (
	"fmt"
	"log"
	"os"

	"github.com/wneessen/go-mail"

	"vitrine3d_back_end/internal/models"
)

// SendOrderConfirmation envoie l'e-mail de confirmation de commande.
// Appelé en goroutine : un échec SMTP n'annule jamais la commande.
func SendOrderConfirmation(to string, order models.Order) {
	msg := mail.NewMsg()

	from := os.Getenv("SMTP_FROM")
	if from == "" {
		from = "noreply@vitrine3d.fr"
	}
	if err := msg.From(from); err != nil {
		log.Println("❌ Adresse expéditeur invalide:", err)
		return
	}
	if err := msg.To(to); err != nil {
		log.Println("❌ Adresse destinataire invalide:", err)
		return
	}
	msg.Subject(fmt.Sprintf("Confirmation de votre commande %s", order.ID.String()))
	msg.SetBodyString(mail.TypeTextHTML, orderConfirmationHTML(order))

	client, err := mail.NewClient(os.Getenv("SMTP_HOST"),
		mail.WithPort(587),
		mail.WithSMTPAuth(mail.SMTPAuthLogin),
		mail.WithUsername(os.Getenv("SMTP_USERNAME")),
		mail.WithPassword(os.Getenv("SMTP_PASSWORD")),
		mail.WithTLSPolicy(mail.TLSMandatory),
	)
	if err != nil {
		log.Println("❌ Erreur client SMTP:", err)
		return
	}

	log.Println("📤 Envoi de l'e-mail de confirmation à", to)
	if err := client.DialAndSend(msg); err != nil {
		log.Println("❌ Erreur envoi e-mail:", err)
	}
}

func orderConfirmationHTML(order models.Order) string {
	itemsHTML := ""
	for _, item := range order.Items {
		itemsHTML += fmt.Sprintf(`
			<tr>
				<td>%s</td>
				<td>%d</td>
				<td>%.2f€</td>
				<td>%.2f€</td>
			</tr>`, item.Name, item.Quantity, item.Price, item.Price*float64(item.Quantity))
	}

	return fmt.Sprintf(`
<!DOCTYPE html>
<html lang="fr">
<head><meta charset="UTF-8"><title>Confirmation de commande</title></head>
<body style="font-family: Arial, sans-serif; background-color: #f9f9f9; padding: 20px;">
	<div style="max-width: 600px; margin: auto; background-color: white; padding: 20px; border-radius: 10px;">
		<h2 style="color: #333;">Confirmation de votre commande</h2>
		<p>Bonjour,</p>
		<p>Votre commande a été confirmée avec succès.</p>
		<table style="width: 100%%; border-collapse: collapse; margin: 20px 0;">
			<thead>
				<tr style="background-color: #f0f0f0;">
					<th style="padding: 10px; text-align: left;">Produit</th>
					<th style="padding: 10px; text-align: left;">Quantité</th>
					<th style="padding: 10px; text-align: left;">Prix unitaire</th>
					<th style="padding: 10px; text-align: left;">Total</th>
				</tr>
			</thead>
			<tbody>%s</tbody>
		</table>
		<p style="font-size: 18px;"><strong>Total : %.2f€</strong></p>
		<p>Merci pour votre confiance.</p>
	</div>
</body>
</html>`, itemsHTML, order.Total)
}
