package notification

import (
	"fmt"
	"strings"

	"github.com/vladislavdragonenkov/storefront/internal/domain"
)

const (
	// Title — фиксированный заголовок подтверждения покупки.
	Title = "Purchase Successful!"

	fallbackName  = "an item"
	fallbackPrice = "??"
)

// Compose строит сообщение о покупке. Функция чистая и не возвращает ошибок:
// отсутствующие имя и цена заменяются текстом-заглушкой.
func Compose(product domain.Product) domain.PushMessage {
	name := strings.TrimSpace(product.Name)
	if name == "" {
		name = fallbackName
	}
	price := strings.TrimSpace(product.Price)
	if price == "" {
		price = fallbackPrice
	}

	return domain.PushMessage{
		Title:    Title,
		Body:     fmt.Sprintf("You bought %s for $%s", name, price),
		ImageURL: strings.TrimSpace(product.ImageURL),
	}
}
