// Command statebot connects a gateway client to the state cache and
// serves the cache's Prometheus metrics. It exists to show the cache
// fed by real dispatch traffic; it sends nothing.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	discache "github.com/disgoorg/disgo/cache"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/disgoorg/snowflake/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"

	"github.com/fuad-daoud/discord-state/cache"
	"github.com/fuad-daoud/discord-state/discord"
	"github.com/fuad-daoud/discord-state/logger/dlog"
	"github.com/fuad-daoud/discord-state/metrics/prom"
)

func main() {
	registry := prometheus.NewRegistry()
	caches := cache.New(
		cache.WithLogger(dlog.Log),
		cache.WithMetrics(prom.New(registry, "discord", "state", nil)),
	)
	registry.MustRegister(prom.NewStatsCollector(caches, "discord", "state", nil))

	client, err := disgo.New(os.Getenv("TOKEN"),
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentsNonPrivileged,
				gateway.IntentMessageContent,
				gateway.IntentGuildMembers,
				gateway.IntentGuildMessages,
				gateway.IntentDirectMessages,
				gateway.IntentGuildVoiceStates,
			),
		),
		// the client's own cache is off, this process is the cache
		bot.WithCacheConfigOpts(
			discache.WithCaches(discache.FlagsNone),
		),

		bot.WithEventListenerFunc(func(e *events.Ready) {
			ids := make([]snowflake.ID, 0, len(e.Guilds))
			for _, g := range e.Guilds {
				ids = append(ids, g.ID)
			}
			caches.SetMe(mapOwnUser(e.User))
			caches.SetInitialUnavailableGuilds(ids)
			dlog.Info("session ready", "unavailableGuilds", len(ids))
		}),

		bot.WithEventListenerFunc(func(e *events.GuildReady) {
			caches.SetGuild(mapGuild(e.Guild))
		}),
		bot.WithEventListenerFunc(func(e *events.GuildUpdate) {
			caches.SetGuild(mapGuild(e.Guild))
		}),
		bot.WithEventListenerFunc(func(e *events.GuildAvailable) {
			caches.SetGuild(mapGuild(e.Guild))
		}),
		bot.WithEventListenerFunc(func(e *events.GuildUnavailable) {
			caches.SetGuildAvailability(e.GuildID, false)
		}),
		bot.WithEventListenerFunc(func(e *events.GuildLeave) {
			caches.DeleteGuild(e.GuildID)
		}),

		bot.WithEventListenerFunc(func(e *events.GuildMemberJoin) {
			caches.SetMember(mapMember(e.GuildID, e.Member))
		}),
		bot.WithEventListenerFunc(func(e *events.GuildMemberUpdate) {
			caches.SetMember(mapMember(e.GuildID, e.Member))
		}),
		bot.WithEventListenerFunc(func(e *events.GuildMemberLeave) {
			caches.DeleteMember(e.GuildID, e.User.ID)
		}),

		bot.WithEventListenerFunc(func(e *events.GuildVoiceStateUpdate) {
			if e.VoiceState.ChannelID == nil {
				caches.DeleteVoiceState(e.VoiceState.GuildID, e.VoiceState.UserID)
				return
			}
			caches.SetVoiceState(mapVoiceState(e.VoiceState))
		}),

		bot.WithEventListenerFunc(func(e *events.RoleCreate) {
			caches.SetRole(mapRole(e.GuildID, e.Role))
		}),
		bot.WithEventListenerFunc(func(e *events.RoleUpdate) {
			caches.SetRole(mapRole(e.GuildID, e.Role))
		}),
		bot.WithEventListenerFunc(func(e *events.RoleDelete) {
			caches.DeleteRole(e.RoleID)
		}),

		bot.WithEventListenerFunc(func(e *events.GuildChannelCreate) {
			caches.SetGuildChannel(mapGuildChannel(e.GuildID, e.Channel))
		}),
		bot.WithEventListenerFunc(func(e *events.GuildChannelUpdate) {
			caches.SetGuildChannel(mapGuildChannel(e.GuildID, e.Channel))
		}),
		bot.WithEventListenerFunc(func(e *events.GuildChannelDelete) {
			caches.DeleteGuildChannel(e.ChannelID)
		}),

		bot.WithEventListenerFunc(func(e *events.MessageCreate) {
			message := mapMessage(e.Message)
			caches.SetMessage(message)
			if message.GuildID == nil {
				trackDMChannel(caches, message)
			}
		}),
		bot.WithEventListenerFunc(func(e *events.MessageUpdate) {
			caches.SetMessage(mapMessage(e.Message))
		}),
		bot.WithEventListenerFunc(func(e *events.MessageDelete) {
			caches.DeleteMessage(e.MessageID)
		}),
	)
	if err != nil {
		panic(err)
	}

	if err = client.OpenGateway(context.TODO()); err != nil {
		panic(err)
	}
	defer client.Close(context.TODO())

	go serveMetrics(registry)
	startStatsCron(caches)

	dlog.Info("statebot is up")

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop
	dlog.Info("shutting down")
}

// trackDMChannel learns DM channels from inbound direct messages; the
// gateway sends no channel create for them. Our own outbound echoes are
// skipped since the recipient cannot be read off those.
func trackDMChannel(caches *cache.Caches, message discord.Message) {
	if me, ok := caches.Me(); ok && me.ID == message.Author.ID {
		return
	}
	if _, ok := caches.DMChannel(message.Author.ID); ok {
		return
	}
	messageID := message.ID
	caches.SetDMChannel(discord.DMChannel{
		ID:            message.ChannelID,
		Type:          discord.ChannelTypeDM,
		LastMessageID: &messageID,
		Recipient:     message.Author,
	})
}

func serveMetrics(registry *prometheus.Registry) {
	http.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	if err := http.ListenAndServe(":9090", nil); err != nil {
		dlog.Error("metrics server stopped", "err", err)
	}
}

func startStatsCron(caches *cache.Caches) {
	c := cron.New()
	entryID, err := c.AddFunc("@every 1m", func() {
		stats := caches.Stats()
		dlog.Info("cache census",
			"users", stats.Users,
			"guilds", stats.Guilds,
			"members", stats.Members,
			"voiceStates", stats.VoiceStates,
			"roles", stats.Roles,
			"emojis", stats.Emojis,
			"guildChannels", stats.GuildChannels,
			"dmChannels", stats.DMChannels,
			"messages", stats.Messages,
			"hits", stats.Hits,
			"misses", stats.Misses,
			"evictions", stats.Evictions,
		)
	})
	if err != nil {
		panic(err)
	}
	c.Start()
	dlog.Info("Created cron ", "entryID", entryID)
}
