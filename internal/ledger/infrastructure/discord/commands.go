package discord

import "github.com/bwmarrin/discordgo"

const (
	addProductModalID  = "addproduct_modal"
	createOrderModalID = "createorder_modal"
)

// commands is the full slash-command surface, synced on ready.
var commands = []*discordgo.ApplicationCommand{
	{
		Name:        "addproduct",
		Description: "Add a new product to the catalog",
	},
	{
		Name:        "products",
		Description: "View all products",
	},
	{
		Name:        "product",
		Description: "View detailed product information",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "product_id",
				Description: "The product ID to view",
				Required:    true,
			},
		},
	},
	{
		Name:        "createorder",
		Description: "Create a new customer order",
	},
	{
		Name:        "orders",
		Description: "View all orders",
	},
	{
		Name:        "order",
		Description: "View detailed order information",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "order_id",
				Description: "The order ID to view",
				Required:    true,
			},
		},
	},
	{
		Name:        "updatestatus",
		Description: "Update order status",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "order_id",
				Description: "The order ID to update",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "status",
				Description: "New status",
				Required:    true,
				Choices: []*discordgo.ApplicationCommandOptionChoice{
					{Name: "Pending", Value: "pending"},
					{Name: "Processing", Value: "processing"},
					{Name: "Shipped", Value: "shipped"},
					{Name: "Delivered", Value: "delivered"},
					{Name: "Cancelled", Value: "cancelled"},
				},
			},
		},
	},
	{
		Name:        "updatestock",
		Description: "Update product stock",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "product_id",
				Description: "Product ID",
				Required:    true,
			},
			{
				Type:        discordgo.ApplicationCommandOptionInteger,
				Name:        "quantity",
				Description: "New stock quantity",
				Required:    true,
			},
		},
	},
	{
		Name:        "stats",
		Description: "View business statistics",
	},
	{
		Name:        "deleteproduct",
		Description: "Delete a product",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionString,
				Name:        "product_id",
				Description: "Product ID to delete",
				Required:    true,
			},
		},
	},
	{
		Name:        "setchannel",
		Description: "Set the channel where new orders are mirrored",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionChannel,
				Name:        "channel",
				Description: "Channel to receive order notifications",
				Required:    true,
			},
		},
	},
	{
		Name:        "help",
		Description: "View all available commands",
	},
}

var addProductModal = []discordgo.MessageComponent{
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "name",
			Label:       "Product Name",
			Style:       discordgo.TextInputShort,
			Placeholder: "Enter product name...",
			Required:    true,
		},
	}},
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "description",
			Label:       "Description",
			Style:       discordgo.TextInputParagraph,
			Placeholder: "Enter product description...",
			Required:    true,
			MaxLength:   1000,
		},
	}},
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "price",
			Label:       "Price",
			Style:       discordgo.TextInputShort,
			Placeholder: "19.99",
			Required:    true,
		},
	}},
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "supplier_cost",
			Label:       "Supplier Cost",
			Style:       discordgo.TextInputShort,
			Placeholder: "9.99",
			Required:    true,
		},
	}},
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "stock",
			Label:       "Stock Quantity",
			Style:       discordgo.TextInputShort,
			Placeholder: "100",
			Required:    true,
		},
	}},
}

var createOrderModal = []discordgo.MessageComponent{
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "product_id",
			Label:       "Product ID",
			Style:       discordgo.TextInputShort,
			Placeholder: "Enter product ID...",
			Required:    true,
		},
	}},
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "quantity",
			Label:       "Quantity",
			Style:       discordgo.TextInputShort,
			Placeholder: "1",
			Required:    true,
		},
	}},
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "customer_name",
			Label:       "Customer Name",
			Style:       discordgo.TextInputShort,
			Placeholder: "John Doe",
			Required:    true,
		},
	}},
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "customer_email",
			Label:       "Customer Email",
			Style:       discordgo.TextInputShort,
			Placeholder: "customer@email.com",
			Required:    true,
		},
	}},
	discordgo.ActionsRow{Components: []discordgo.MessageComponent{
		discordgo.TextInput{
			CustomID:    "shipping_address",
			Label:       "Shipping Address",
			Style:       discordgo.TextInputParagraph,
			Placeholder: "123 Main St, City, State, ZIP",
			Required:    true,
		},
	}},
}

// modalValues flattens a modal submission into field name to value.
func modalValues(data discordgo.ModalSubmitInteractionData) map[string]string {
	out := map[string]string{}
	for _, row := range data.Components {
		ar, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, c := range ar.Components {
			if ti, ok := c.(*discordgo.TextInput); ok {
				out[ti.CustomID] = ti.Value
			}
		}
	}
	return out
}

// commandOptions flattens slash-command options into name to option.
func commandOptions(data discordgo.ApplicationCommandInteractionData) map[string]*discordgo.ApplicationCommandInteractionDataOption {
	out := map[string]*discordgo.ApplicationCommandInteractionDataOption{}
	for _, opt := range data.Options {
		out[opt.Name] = opt
	}
	return out
}
