package main

import (
	"context"
	"flag"
	"io"

	"github.com/diwise/service-chassis/pkg/infrastructure/env"
	"github.com/diwise/veda-client/internal/pkg/infrastructure/storage"
)

type FlagType int
type FlagMap map[FlagType]string

const (
	listenAddress FlagType = iota
	servicePort

	usersConfigPath
	policyPath
	notifierEndpoint

	logFormat
)

type AppConfig struct {
	usersConfig io.ReadCloser
	opaConfig   io.ReadCloser

	storage storage.Config
}

func DefaultFlags() FlagMap {
	return FlagMap{
		listenAddress: "",
		servicePort:   "8080",

		usersConfigPath: "/opt/veda/config/users.yaml",
		policyPath:      "/opt/veda/config/authz.rego",

		logFormat: "json",
	}
}

func parseExternalConfig(ctx context.Context, flags FlagMap) (context.Context, FlagMap) {

	// Allow environment variables to override certain defaults
	envOrDef := env.GetVariableOrDefault
	flags[servicePort] = envOrDef(ctx, "SERVICE_PORT", flags[servicePort])
	flags[usersConfigPath] = envOrDef(ctx, "USERS_CONFIG_PATH", flags[usersConfigPath])
	flags[policyPath] = envOrDef(ctx, "POLICY_PATH", flags[policyPath])
	flags[notifierEndpoint] = envOrDef(ctx, "NOTIFIER_ENDPOINT", flags[notifierEndpoint])

	apply := func(f FlagType) func(string) error {
		return func(value string) error {
			flags[f] = value
			return nil
		}
	}

	// Allow command line arguments to override defaults and environment variables
	flag.Func("users", "-users=/path/to/users.yaml", apply(usersConfigPath))
	flag.Func("policies", "-policies=/path/to/authz.rego", apply(policyPath))
	flag.Func("port", "-port=8080", apply(servicePort))
	flag.Func("logformat", "-logformat=json|text", apply(logFormat))
	flag.Parse()

	return ctx, flags
}
