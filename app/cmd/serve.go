package cmd

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/Rakhulsr/wishcrate/app/auth"
	"github.com/Rakhulsr/wishcrate/app/configs"
	"github.com/Rakhulsr/wishcrate/app/routes"
	"github.com/Rakhulsr/wishcrate/app/services"
	"github.com/Rakhulsr/wishcrate/app/utils/cache"
	"github.com/Rakhulsr/wishcrate/app/utils/format"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func categoryCache(ctx context.Context, env configs.ENV, logger *zap.Logger) cache.CategoryCache {
	client, err := configs.NewRedisClient(ctx, env)
	if err != nil {
		logger.Warn("redis unavailable, category cache disabled", zap.Error(err))
		return cache.NoopCache{}
	}
	if client == nil {
		return cache.NoopCache{}
	}
	logger.Info("category cache enabled", zap.String("redis_addr", env.RedisAddr))
	return cache.NewRedisCache(client, env.CategoryCacheTTL)
}

func paymentGateway(env configs.ENV, logger *zap.Logger) services.PaymentGateway {
	if env.MidtransServerKey == "" {
		logger.Warn("MIDTRANS_SERVER_KEY not set, online payments disabled")
		return nil
	}
	snapClient, coreClient := configs.NewMidtransClients(env)
	return services.NewMidtransGateway(snapClient, coreClient)
}

func serve(ctx context.Context, env configs.ENV, logger *zap.Logger, db *gorm.DB) error {
	if env.JWTSecret == "" {
		return errors.New("JWT_SECRET is empty, run `generate-keys` and add it to .env")
	}
	format.SetCurrencySymbol(env.CurrencySymbol)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	deps := routes.Wire(db, logger, routes.Options{
		Tokens:     auth.NewTokenManager(env.JWTSecret, time.Duration(env.JWTExpirationHours)*time.Hour),
		Cache:      categoryCache(ctx, env, logger),
		Gateway:    paymentGateway(env, logger),
		AppURL:     env.AppURL,
		Production: env.IsProduction(),
	})

	server := &http.Server{
		Addr:         env.Port,
		Handler:      routes.NewRouter(deps),
		ReadTimeout:  env.HTTPReadTimeout,
		WriteTimeout: env.HTTPWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.String("addr", server.Addr), zap.String("env", env.AppEnv))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
