package whatsapp

import (
	"context"
	"fmt"
	"log"
	"sync"

	_ "github.com/mattn/go-sqlite3"
	"go.mau.fi/whatsmeow"
	"go.mau.fi/whatsmeow/store"
	"go.mau.fi/whatsmeow/store/sqlstore"
	"go.mau.fi/whatsmeow/types/events"
	waLog "go.mau.fi/whatsmeow/util/log"

	"wabot/internal/bot"
	"wabot/internal/config"
	"wabot/internal/core"
	"wabot/internal/premium"
	"wabot/internal/session"
	"wabot/internal/storage"
	"wabot/internal/version"
)

// Bot owns the WhatsApp connection and all shared bot state. Every consumer
// receives its collaborators through this struct; nothing is ambient.
type Bot struct {
	cfg       *config.Config
	storage   *storage.Storage
	registry  *core.Registry
	sessions  *session.Store
	premium   *premium.Cache
	cooldowns *core.CooldownTracker

	client    *whatsmeow.Client
	messenger bot.Messenger

	// handlerID is non-zero once the event handler is registered; guards
	// against double registration if setup runs twice.
	handlerID uint32

	// mu serializes message handling so command execution for one message
	// finishes before the next begins.
	mu sync.Mutex
}

func NewBot(cfg *config.Config, st *storage.Storage, reg *core.Registry, sess *session.Store, prem *premium.Cache, cd *core.CooldownTracker) *Bot {
	return &Bot{
		cfg:       cfg,
		storage:   st,
		registry:  reg,
		sessions:  sess,
		premium:   prem,
		cooldowns: cd,
	}
}

// Run connects to WhatsApp and blocks until ctx is done. On a fresh session
// the pairing QR code is printed to the log.
func (b *Bot) Run(ctx context.Context) error {
	container, err := sqlstore.New(ctx, "sqlite3", b.cfg.SessionDB, waLog.Stdout("DB", "WARN", true))
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}

	device, err := b.pickDevice(ctx, container)
	if err != nil {
		return fmt.Errorf("load device: %w", err)
	}

	b.client = whatsmeow.NewClient(device, waLog.Stdout("Client", "WARN", true))
	b.messenger = newMessenger(b.client)
	b.registerHandler()

	if b.client.Store.ID == nil {
		qrChan, _ := b.client.GetQRChannel(ctx)
		if err := b.client.Connect(); err != nil {
			return fmt.Errorf("connect: %w", err)
		}
		for evt := range qrChan {
			if evt.Event == "code" {
				log.Printf("[INFO] Scan to pair %s:\n%s", version.AppName, evt.Code)
			} else {
				log.Printf("[INFO] QR channel event: %s", evt.Event)
			}
		}
	} else {
		if err := b.client.Connect(); err != nil {
			return fmt.Errorf("connect: %w", err)
		}
	}

	log.Printf("[INFO] ✅ %s is running with %d commands.", version.AppName, b.registry.Len())

	<-ctx.Done()
	log.Println("[INFO] ❎ Shutdown signal received. Disconnecting...")
	b.client.Disconnect()
	return nil
}

func (b *Bot) pickDevice(ctx context.Context, container *sqlstore.Container) (*store.Device, error) {
	devices, err := container.GetAllDevices(ctx)
	if err != nil {
		return nil, err
	}
	if len(devices) > 0 {
		// Most recently paired device wins.
		device := devices[len(devices)-1]
		log.Printf("[INFO] Found existing device: %s", device.PushName)
		return device, nil
	}
	device := container.NewDevice()
	device.PushName = version.AppName
	log.Println("[INFO] New session created, pairing required")
	return device, nil
}

// registerHandler attaches the inbound event handler exactly once.
func (b *Bot) registerHandler() {
	if b.handlerID != 0 {
		log.Println("[WARN] Event handler already registered, skipping")
		return
	}
	b.handlerID = b.client.AddEventHandler(b.handleEvent)
}

func (b *Bot) handleEvent(evt interface{}) {
	switch v := evt.(type) {
	case *events.Message:
		b.process(context.Background(), incomingFromEvent(v))
	}
}
