// Package whatsapp строит ссылки для связи покупателя с магазином в WhatsApp.
// Интеграция односторонняя: приложение лишь формирует deep link,
// который отображающий слой открывает в новом окне.
package whatsapp

import (
	"fmt"
	"net/url"

	"github.com/mmeshcher/urbanaura-shop/internal/model"
)

// DefaultPhone — контактный номер магазина по умолчанию.
const DefaultPhone = "254701036266"

// LinkBuilder формирует ссылки wa.me с предзаполненным сообщением.
type LinkBuilder struct {
	phone string
}

// NewLinkBuilder создаёт построитель ссылок на указанный контактный номер.
func NewLinkBuilder(phone string) *LinkBuilder {
	if phone == "" {
		phone = DefaultPhone
	}
	return &LinkBuilder{phone: phone}
}

// ProductInquiry возвращает ссылку с вопросом о товаре.
func (b *LinkBuilder) ProductInquiry(p model.Product) string {
	message := fmt.Sprintf(
		"Hi! I'm interested in the %s (KSh %d). Can you provide more details?",
		p.Name, p.Price,
	)
	return b.link(message)
}

// OrderConfirmation возвращает ссылку с просьбой подтвердить заказ.
func (b *LinkBuilder) OrderConfirmation(orderID int64) string {
	message := fmt.Sprintf(
		"Hi! I just placed an order (%s). Can you confirm my order details?",
		OrderNumber(orderID),
	)
	return b.link(message)
}

func (b *LinkBuilder) link(message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", b.phone, url.QueryEscape(message))
}

// OrderNumber возвращает короткий номер заказа для переписки:
// префикс UA и последние шесть цифр идентификатора.
func OrderNumber(orderID int64) string {
	return fmt.Sprintf("UA%06d", orderID%1000000)
}
