package cli

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	intconfig "hoponhub/internal/config"
	"hoponhub/internal/gateway"
	router "hoponhub/internal/http"
	"hoponhub/internal/http/pages"
	"hoponhub/internal/session"
	"hoponhub/internal/utils"
)

const janitorInterval = 5 * time.Minute

var webSecureCookie bool

var webCmd = &cobra.Command{
	Use:   "web",
	Short: "Run the booking pages",
	Long: `Run the booking website on HOPONHUB_APP_ADDR.

Pages call the backend at HOPONHUB_BACKEND_URL. Session state lives in
memory or in Redis (HOPONHUB_SESSION_BACKEND=redis, HOPONHUB_REDIS_URL).`,
	RunE: runWeb,
}

func init() {
	rootCmd.AddCommand(webCmd)
	webCmd.Flags().BoolVar(&webSecureCookie, "secure-cookie", false, "mark the session cookie Secure (serve behind HTTPS)")
}

func runWeb(cmd *cobra.Command, _ []string) error {
	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	store, closeStore, err := newSessionStore(ctx, env)
	if err != nil {
		return err
	}
	defer closeStore()

	secret, err := sessionSecret(env, gin.Mode())
	if err != nil {
		return err
	}
	codec, err := session.NewCodec(secret)
	if err != nil {
		return err
	}
	sessions := session.NewManager(store, codec)
	sessions.Secure = webSecureCookie

	pc, err := pages.New(gateway.New(env.BackendURL, env.GatewayTimeout))
	if err != nil {
		return fmt.Errorf("load templates: %w", err)
	}
	return serve(ctx, "web", env.AppAddr, router.NewWebRouter(pc, sessions))
}

func newSessionStore(ctx context.Context, env intconfig.Env) (session.Store, func(), error) {
	log := utils.Logger("session")
	switch env.SessionBackend {
	case "", "memory":
		mem := session.NewMemoryStore(env.SessionTTL)
		go mem.RunJanitor(ctx, janitorInterval)
		log.Info().Dur("ttl", env.SessionTTL).Msg("using in-memory sessions")
		return mem, func() {}, nil
	case "redis":
		rs, err := session.NewRedisStore(ctx, env.RedisURL, env.SessionTTL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect redis: %w", err)
		}
		log.Info().Dur("ttl", env.SessionTTL).Msg("using redis sessions")
		return rs, func() { _ = rs.Close() }, nil
	default:
		return nil, nil, fmt.Errorf("unknown session backend %q", env.SessionBackend)
	}
}

// sessionSecret refuses the built-in secret in release mode. Elsewhere it
// swaps it for a random one, so cookies do not survive a restart.
func sessionSecret(env intconfig.Env, mode string) (string, error) {
	secret := strings.TrimSpace(env.SessionSecret)
	if secret != "" && secret != intconfig.DefaultSessionSecret {
		return secret, nil
	}
	if mode == gin.ReleaseMode {
		return "", fmt.Errorf("HOPONHUB_SESSION_SECRET must be set in %s mode", mode)
	}
	utils.Logger("session").Warn().Msg("HOPONHUB_SESSION_SECRET not set, using a random secret for this process")
	return rand.Text(), nil
}
