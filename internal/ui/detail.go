package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"dashdeck/internal/model"
	"dashdeck/internal/util"
)

// ProductDetailModel represents the product detail screen.
type ProductDetailModel struct {
	product model.Product
}

// NewProductDetailModel creates a new product detail model.
func NewProductDetailModel(p model.Product) *ProductDetailModel {
	return &ProductDetailModel{product: p}
}

// View renders the product detail.
func (m *ProductDetailModel) View(width, height int, now time.Time) string {
	p := m.product
	fields := []string{
		renderField("Name", p.Name),
		renderField("Price", util.FormatMoney(p.Price)),
		renderField("Category", p.Category),
		renderField("Stock", util.FormatCount(p.Stock)),
		LabelStyle.Render("Status:") + " " + renderStatus(p.Status),
		renderField("Added", fmt.Sprintf("%s (%s)", util.FormatDate(p.AddedOn), util.FormatDateHuman(p.AddedOn, now))),
	}
	return renderDetail(fields, width)
}

// OrderDetailModel represents the order detail screen.
type OrderDetailModel struct {
	order model.Order
}

// NewOrderDetailModel creates a new order detail model.
func NewOrderDetailModel(o model.Order) *OrderDetailModel {
	return &OrderDetailModel{order: o}
}

// View renders the order detail.
func (m *OrderDetailModel) View(width, height int, now time.Time) string {
	o := m.order
	fields := []string{
		renderField("Order", o.ID),
		renderField("Customer", o.Customer),
		renderField("Total", util.FormatMoney(o.Total)),
		LabelStyle.Render("Status:") + " " + renderStatus(o.Status),
		renderField("Date", fmt.Sprintf("%s (%s)", util.FormatDate(o.Date), util.FormatDateHuman(o.Date, now))),
	}
	return renderDetail(fields, width)
}

func renderField(label, value string) string {
	if value == "" {
		value = "—"
	}
	return LabelStyle.Render(label+":") + " " + NormalRowStyle.Render(value)
}

func renderDetail(fields []string, width int) string {
	shortcuts := HelpDescStyle.Render("b back")
	header := lipgloss.NewStyle().
		Width(width - 4).
		Align(lipgloss.Right).
		Render(shortcuts)

	info := PanelStyle.
		Width(width - 4).
		Render(strings.Join(fields, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, info)
}
