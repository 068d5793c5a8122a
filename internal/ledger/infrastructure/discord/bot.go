// Package discord is the presentation adapter: it maps slash commands and
// modal forms onto ledger operations and renders the results as embeds.
package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/commercebot/shopkeeper/internal/ledger/application"
	"github.com/commercebot/shopkeeper/internal/ledger/domain"
	"github.com/commercebot/shopkeeper/pkg/idempotency"
)

type Bot struct {
	log     *slog.Logger
	ledger  *application.Ledger
	idem    *idempotency.Store // optional interaction dedupe
	session *discordgo.Session
}

func New(log *slog.Logger, token string, ledger *application.Ledger, idem *idempotency.Store) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord session: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentMessageContent

	b := &Bot{log: log, ledger: ledger, idem: idem, session: session}
	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteraction)
	return b, nil
}

// Open connects to the gateway. Commands are synced on the ready event.
func (b *Bot) Open() error { return b.session.Open() }

func (b *Bot) Close() error { return b.session.Close() }

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	if _, err := s.ApplicationCommandBulkOverwrite(s.State.User.ID, "", commands); err != nil {
		b.log.Error("command sync failed", "err", err)
		return
	}
	b.log.Info("bot online", "user", r.User.Username, "guilds", len(r.Guilds))
}

func (b *Bot) onInteraction(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx := context.Background()

	// The gateway may redeliver interactions after a reconnect; when a
	// dedupe store is configured, handle each interaction id once.
	if b.idem != nil {
		seen, err := b.idem.Seen(ctx, idempotency.InteractionKey(i.ID))
		if err != nil {
			b.log.Warn("interaction dedupe check failed", "err", err)
		} else if seen {
			return
		}
	}

	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		b.handleCommand(ctx, s, i)
	case discordgo.InteractionModalSubmit:
		b.handleModal(ctx, s, i)
	}
}

func (b *Bot) handleCommand(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ApplicationCommandData()
	opts := commandOptions(data)

	switch data.Name {
	case "addproduct":
		if !hasPermission(i, discordgo.PermissionManageMessages) {
			b.replyText(s, i, permissionDenied, true)
			return
		}
		b.openModal(s, i, addProductModalID, "Add Product", addProductModal)

	case "products":
		products := b.ledger.ListProducts()
		if len(products) == 0 {
			b.replyText(s, i, "📦 No products available yet!", true)
			return
		}
		b.replyEmbed(s, i, catalogEmbed(products), false)

	case "product":
		p, err := b.ledger.GetProduct(opts["product_id"].StringValue())
		if err != nil {
			b.replyText(s, i, errorReply(err), true)
			return
		}
		b.replyEmbed(s, i, productEmbed(p), false)

	case "createorder":
		if !hasPermission(i, discordgo.PermissionManageMessages) {
			b.replyText(s, i, permissionDenied, true)
			return
		}
		b.openModal(s, i, createOrderModalID, "Create Order", createOrderModal)

	case "orders":
		orders := b.ledger.ListOrders(0)
		if len(orders) == 0 {
			b.replyText(s, i, "📋 No orders yet!", true)
			return
		}
		b.replyEmbed(s, i, ordersEmbed(orders), false)

	case "order":
		o, err := b.ledger.GetOrder(opts["order_id"].StringValue())
		if err != nil {
			b.replyText(s, i, errorReply(err), true)
			return
		}
		b.replyEmbed(s, i, orderEmbed(o), false)

	case "updatestatus":
		if !hasPermission(i, discordgo.PermissionManageMessages) {
			b.replyText(s, i, permissionDenied, true)
			return
		}
		orderID := opts["order_id"].StringValue()
		oldStatus, newStatus, err := b.ledger.UpdateOrderStatus(ctx, orderID, opts["status"].StringValue())
		if err != nil {
			b.replyText(s, i, errorReply(err), true)
			return
		}
		b.replyEmbed(s, i, statusUpdatedEmbed(orderID, oldStatus, newStatus), false)

	case "updatestock":
		if !hasPermission(i, discordgo.PermissionManageMessages) {
			b.replyText(s, i, permissionDenied, true)
			return
		}
		productID := opts["product_id"].StringValue()
		oldStock, newStock, err := b.ledger.UpdateStock(ctx, productID, int(opts["quantity"].IntValue()))
		if err != nil {
			b.replyText(s, i, errorReply(err), true)
			return
		}
		name := productID
		if p, err := b.ledger.GetProduct(productID); err == nil {
			name = p.Name
		}
		b.replyEmbed(s, i, stockUpdatedEmbed(name, oldStock, newStock), false)

	case "stats":
		b.replyEmbed(s, i, statsEmbed(b.ledger.ComputeStatistics()), false)

	case "deleteproduct":
		if !hasPermission(i, discordgo.PermissionAdministrator) {
			b.replyText(s, i, permissionDenied, true)
			return
		}
		productID := opts["product_id"].StringValue()
		name, err := b.ledger.DeleteProduct(ctx, productID)
		if err != nil {
			b.replyText(s, i, errorReply(err), true)
			return
		}
		b.replyText(s, i, fmt.Sprintf("✅ Product **%s** (ID: %s) has been deleted.", name, productID), true)

	case "setchannel":
		if !hasPermission(i, discordgo.PermissionAdministrator) {
			b.replyText(s, i, permissionDenied, true)
			return
		}
		channel := opts["channel"].ChannelValue(nil)
		settings := b.ledger.Settings()
		settings.OrderChannel = channel.ID
		if err := b.ledger.UpdateSettings(ctx, settings); err != nil {
			b.replyText(s, i, errorReply(err), true)
			return
		}
		b.replyText(s, i, fmt.Sprintf("✅ New orders will be mirrored to <#%s>.", channel.ID), true)

	case "help":
		b.replyEmbed(s, i, helpEmbed(), false)
	}
}

func (b *Bot) handleModal(ctx context.Context, s *discordgo.Session, i *discordgo.InteractionCreate) {
	data := i.ModalSubmitData()
	values := modalValues(data)

	switch data.CustomID {
	case addProductModalID:
		p, err := b.ledger.AddProduct(ctx, application.AddProductInput{
			Name:         values["name"],
			Description:  values["description"],
			Price:        values["price"],
			SupplierCost: values["supplier_cost"],
			Stock:        values["stock"],
		})
		if err != nil && !unpersisted(err) {
			b.replyText(s, i, errorReply(err), true)
			return
		}
		b.replyEmbed(s, i, productAddedEmbed(p), false)

	case createOrderModalID:
		user := interactionUser(i)
		o, err := b.ledger.CreateOrder(ctx, application.CreateOrderInput{
			ProductID:       values["product_id"],
			Quantity:        values["quantity"],
			CustomerName:    values["customer_name"],
			CustomerEmail:   values["customer_email"],
			ShippingAddress: values["shipping_address"],
			ActorID:         user.ID,
		})
		if err != nil && !unpersisted(err) {
			b.replyText(s, i, errorReply(err), true)
			return
		}

		embed := orderCreatedEmbed(o, user.Username)
		b.replyEmbed(s, i, embed, false)

		if channelID := b.ledger.Settings().OrderChannel; channelID != "" {
			if _, err := s.ChannelMessageSendEmbed(channelID, embed); err != nil {
				b.log.Warn("order mirror failed", "channel", channelID, "err", err)
			}
		}
	}
}

const permissionDenied = "❌ You don't have permission to use this command!"

func hasPermission(i *discordgo.InteractionCreate, perm int64) bool {
	if i.Member == nil {
		return false
	}
	if i.Member.Permissions&discordgo.PermissionAdministrator != 0 {
		return true
	}
	return i.Member.Permissions&perm != 0
}

func interactionUser(i *discordgo.InteractionCreate) *discordgo.User {
	if i.Member != nil {
		return i.Member.User
	}
	return i.User
}

// unpersisted reports whether err only means the snapshot write failed after
// the mutation was applied; the operation itself succeeded.
func unpersisted(err error) bool {
	var pe *domain.PersistenceError
	return errors.As(err, &pe)
}

func (b *Bot) openModal(s *discordgo.Session, i *discordgo.InteractionCreate, customID, title string, components []discordgo.MessageComponent) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseModal,
		Data: &discordgo.InteractionResponseData{
			CustomID:   customID,
			Title:      title,
			Components: components,
		},
	})
	if err != nil {
		b.log.Error("modal open failed", "modal", customID, "err", err)
	}
}

func (b *Bot) replyEmbed(s *discordgo.Session, i *discordgo.InteractionCreate, embed *discordgo.MessageEmbed, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Embeds: []*discordgo.MessageEmbed{embed}}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	b.respond(s, i, data)
}

func (b *Bot) replyText(s *discordgo.Session, i *discordgo.InteractionCreate, content string, ephemeral bool) {
	data := &discordgo.InteractionResponseData{Content: content}
	if ephemeral {
		data.Flags = discordgo.MessageFlagsEphemeral
	}
	b.respond(s, i, data)
}

func (b *Bot) respond(s *discordgo.Session, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) {
	err := s.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	})
	if err != nil {
		b.log.Error("interaction response failed", "err", err)
	}
}
