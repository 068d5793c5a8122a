package discord

import (
	"errors"
	"fmt"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/shopspring/decimal"

	"github.com/commercebot/shopkeeper/internal/ledger/domain"
)

const (
	colorGreen  = 0x2ecc71
	colorBlue   = 0x3498db
	colorGold   = 0xf1c40f
	colorPurple = 0x9b59b6
)

var statusEmoji = map[domain.OrderStatus]string{
	domain.StatusPending:    "⏳",
	domain.StatusProcessing: "🔄",
	domain.StatusShipped:    "📦",
	domain.StatusDelivered:  "✅",
	domain.StatusCancelled:  "❌",
}

// money renders to 2 decimal places, percentages to 1; both are formatting
// concerns of this adapter only.
func money(d decimal.Decimal) string { return "$" + d.StringFixed(2) }
func pct(d decimal.Decimal) string   { return d.StringFixed(1) + "%" }

func statusLabel(s domain.OrderStatus) string {
	emoji, ok := statusEmoji[s]
	if !ok {
		emoji = "❓"
	}
	return emoji + " " + titleCase(string(s))
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]&^0x20) + s[1:]
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

func productAddedEmbed(p domain.Product) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     "✅ Product Added Successfully",
		Color:     colorGreen,
		Timestamp: now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Product ID", Value: p.ID, Inline: true},
			{Name: "Name", Value: p.Name, Inline: true},
			{Name: "Price", Value: money(p.Price), Inline: true},
			{Name: "Cost", Value: money(p.SupplierCost), Inline: true},
			{Name: "Profit", Value: money(p.UnitProfit()), Inline: true},
			{Name: "Margin", Value: pct(p.ProfitMargin), Inline: true},
			{Name: "Stock", Value: fmt.Sprintf("%d", p.Stock), Inline: true},
		},
	}
}

func catalogEmbed(products []domain.Product) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     "📦 Product Catalog",
		Color:     colorGold,
		Timestamp: now(),
	}
	for _, p := range products {
		status := "✅ Active"
		if !p.Active {
			status = "❌ Inactive"
		}
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name: fmt.Sprintf("ID: %s - %s", p.ID, p.Name),
			Value: fmt.Sprintf(
				"**Price:** %s | **Cost:** %s\n**Profit:** %s | **Margin:** %s\n**Stock:** %d | **Status:** %s",
				money(p.Price), money(p.SupplierCost),
				money(p.UnitProfit()), pct(p.ProfitMargin),
				p.Stock, status,
			),
		})
	}
	return e
}

func productEmbed(p domain.Product) *discordgo.MessageEmbed {
	status := "✅ Active"
	if !p.Active {
		status = "❌ Inactive"
	}
	return &discordgo.MessageEmbed{
		Title:       "📦 " + p.Name,
		Description: p.Description,
		Color:       colorBlue,
		Timestamp:   now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Product ID", Value: p.ID, Inline: true},
			{Name: "Price", Value: money(p.Price), Inline: true},
			{Name: "Supplier Cost", Value: money(p.SupplierCost), Inline: true},
			{Name: "Profit per Unit", Value: money(p.UnitProfit()), Inline: true},
			{Name: "Profit Margin", Value: pct(p.ProfitMargin), Inline: true},
			{Name: "Stock", Value: fmt.Sprintf("%d", p.Stock), Inline: true},
			{Name: "Status", Value: status, Inline: true},
		},
	}
}

func orderCreatedEmbed(o domain.Order, creatorName string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     "🛒 New Order Created",
		Color:     colorBlue,
		Timestamp: now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Order ID", Value: o.ID, Inline: true},
			{Name: "Status", Value: statusLabel(o.Status), Inline: true},
			{Name: "Product", Value: o.ProductName},
			{Name: "Quantity", Value: fmt.Sprintf("%d", o.Quantity), Inline: true},
			{Name: "Total", Value: money(o.Total), Inline: true},
			{Name: "Profit", Value: money(o.Profit), Inline: true},
			{Name: "Customer", Value: o.CustomerName, Inline: true},
			{Name: "Email", Value: o.CustomerEmail, Inline: true},
			{Name: "Shipping Address", Value: o.ShippingAddress},
		},
		Footer: &discordgo.MessageEmbedFooter{Text: "Created by " + creatorName},
	}
}

func ordersEmbed(orders []domain.Order) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     "📋 Order List",
		Color:     colorPurple,
		Timestamp: now(),
	}
	for _, o := range orders {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name: o.ID,
			Value: fmt.Sprintf(
				"**Product:** %s\n**Quantity:** %d | **Total:** %s\n**Profit:** %s | **Status:** %s\n**Customer:** %s",
				o.ProductName, o.Quantity, money(o.Total),
				money(o.Profit), statusLabel(o.Status), o.CustomerName,
			),
		})
	}
	return e
}

func orderEmbed(o domain.Order) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     "📋 Order " + o.ID,
		Color:     colorBlue,
		Timestamp: now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Status", Value: statusLabel(o.Status), Inline: true},
			{Name: "Product", Value: o.ProductName, Inline: true},
			{Name: "Quantity", Value: fmt.Sprintf("%d", o.Quantity), Inline: true},
			{Name: "Total", Value: money(o.Total), Inline: true},
			{Name: "Profit", Value: money(o.Profit), Inline: true},
			{Name: "Customer", Value: o.CustomerName},
			{Name: "Email", Value: o.CustomerEmail, Inline: true},
			{Name: "Shipping Address", Value: o.ShippingAddress},
			{Name: "Created", Value: o.CreatedAt.Format("2006-01-02"), Inline: true},
		},
	}
}

func statusUpdatedEmbed(orderID string, oldStatus, newStatus domain.OrderStatus) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     "✅ Order Status Updated",
		Color:     colorGreen,
		Timestamp: now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Order ID", Value: orderID, Inline: true},
			{Name: "Old Status", Value: titleCase(string(oldStatus)), Inline: true},
			{Name: "New Status", Value: titleCase(string(newStatus)), Inline: true},
		},
	}
}

func stockUpdatedEmbed(productName string, oldStock, newStock int) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:     "✅ Stock Updated",
		Color:     colorGreen,
		Timestamp: now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Product", Value: productName},
			{Name: "Old Stock", Value: fmt.Sprintf("%d", oldStock), Inline: true},
			{Name: "New Stock", Value: fmt.Sprintf("%d", newStock), Inline: true},
			{Name: "Change", Value: fmt.Sprintf("%+d", newStock-oldStock), Inline: true},
		},
	}
}

func statsEmbed(st domain.StatsSnapshot) *discordgo.MessageEmbed {
	e := &discordgo.MessageEmbed{
		Title:     "📊 Business Statistics",
		Color:     colorGold,
		Timestamp: now(),
		Fields: []*discordgo.MessageEmbedField{
			{Name: "Total Products", Value: fmt.Sprintf("%d", st.TotalProducts), Inline: true},
			{Name: "Total Orders", Value: fmt.Sprintf("%d", st.TotalOrders), Inline: true},
			{Name: "Pending Orders", Value: fmt.Sprintf("%d", st.PendingOrders), Inline: true},
			{Name: "Total Revenue", Value: money(st.TotalRevenue), Inline: true},
			{Name: "Total Profit", Value: money(st.TotalProfit), Inline: true},
			{Name: "Completed Orders", Value: fmt.Sprintf("%d", st.CompletedOrders), Inline: true},
			{Name: "Avg Order Value", Value: money(st.AvgOrderValue), Inline: true},
			{Name: "Avg Profit/Order", Value: money(st.AvgProfitPerOrder), Inline: true},
		},
	}
	if st.OverallMarginPct != nil {
		e.Fields = append(e.Fields, &discordgo.MessageEmbedField{
			Name: "Overall Margin", Value: pct(*st.OverallMarginPct), Inline: true,
		})
	}
	return e
}

func helpEmbed() *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "🤖 Shopkeeper Commands",
		Description: "Complete list of available commands",
		Color:       colorBlue,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name: "📦 Product Management",
				Value: "`/addproduct` - Add a new product\n" +
					"`/products` - View all products\n" +
					"`/product <id>` - View product details\n" +
					"`/updatestock <id> <qty>` - Update stock\n" +
					"`/deleteproduct <id>` - Delete a product",
			},
			{
				Name: "📋 Order Management",
				Value: "`/createorder` - Create new order\n" +
					"`/orders` - View all orders\n" +
					"`/order <id>` - View order details\n" +
					"`/updatestatus <id> <status>` - Update order status",
			},
			{
				Name:  "📊 Analytics",
				Value: "`/stats` - View business statistics",
			},
			{
				Name:  "ℹ️ Other",
				Value: "`/setchannel <channel>` - Set order mirror channel\n`/help` - Show this help message",
			},
		},
	}
}

// errorReply maps ledger errors to the user-facing message rendered as an
// ephemeral reply.
func errorReply(err error) string {
	var nf *domain.NotFoundError
	if errors.As(err, &nf) {
		switch nf.Kind {
		case "order":
			return fmt.Sprintf("❌ Order %s not found!", nf.ID)
		default:
			return fmt.Sprintf("❌ Product ID %s not found!", nf.ID)
		}
	}
	var is *domain.InsufficientStockError
	if errors.As(err, &is) {
		return fmt.Sprintf("❌ Insufficient stock! Available: %d", is.Available)
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		if ve.Field == "quantity" {
			return "❌ Invalid quantity! Please enter a valid number."
		}
		return "❌ Invalid input! Please enter valid numbers for price, cost, and stock."
	}
	var pe *domain.PersistenceError
	if errors.As(err, &pe) {
		return "⚠️ The change was applied but could not be written to disk. It will be saved with the next successful change."
	}
	return "❌ Something went wrong, please try again."
}
