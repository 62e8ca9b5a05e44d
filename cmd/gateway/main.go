package main

import (
	"errors"
	"fmt"
	"os"

	"coursecloud/internal/gateway"
	jwttoken "coursecloud/internal/jwt_token"
	"coursecloud/internal/platform/config"
	"coursecloud/internal/platform/httpserver"
	"coursecloud/internal/platform/logger"
	"coursecloud/internal/platform/metrics"
)

// main wires the public gateway: token validation in front of a prefix
// router to the backend services.
func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid configuration: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Log)

	if cfg.JWT.SigningKey == "" {
		log.Error("gateway refuses to start", "error", errors.New("JWT_SIGNING_KEY is required"))
		os.Exit(1)
	}

	proxy, err := gateway.NewProxy(gateway.RoutesFromConfig(cfg.Gateway), nil, log)
	if err != nil {
		log.Error("invalid gateway routes", "error", err)
		os.Exit(1)
	}
	jwtService := jwttoken.NewJWTService(cfg.JWT.SigningKey, cfg.JWT.Issuer, cfg.JWT.Audience)
	router := gateway.NewRouter(proxy, jwttoken.NewIdentityValidatorAdapter(jwtService), log, metrics.New(gateway.ServiceName))

	srv := httpserver.New(cfg.Gateway.Addr, router)
	log.Info("starting gateway",
		"addr", cfg.Gateway.Addr,
		"enrollment_upstream", cfg.Gateway.EnrollmentServiceURL,
		"user_upstream", cfg.Gateway.UserServiceURL,
		"catalog_upstream", cfg.Gateway.CatalogServiceURL,
	)
	if err := httpserver.Run(srv, log, gateway.ServiceName); err != nil {
		log.Error("gateway stopped", "error", err)
		os.Exit(1)
	}
}
