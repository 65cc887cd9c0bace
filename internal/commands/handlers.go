package commands

import (
	"context"

	"github.com/aidanlsb/pbapi/internal/api"
	"github.com/aidanlsb/pbapi/internal/render"
	"github.com/aidanlsb/pbapi/internal/translate"
)

// printer renders the result of a remote call.
type printer func(out *render.Renderer, result any)

func completed(out *render.Renderer, _ any) { out.OperationCompleted() }

func object(fn func(*render.Renderer, *api.Object)) printer {
	return func(out *render.Renderer, result any) {
		fn(out, api.AsObject(result))
	}
}

func createdID(label, field string) printer {
	return func(out *render.Renderer, result any) {
		out.CreatedID(label, field, result)
	}
}

// positional calls remote with the raw values of flags, in order.
func positional(remote string, print printer, flags ...string) Handler {
	return func(ctx context.Context, env Env) error {
		params := make([]any, len(flags))
		for i, f := range flags {
			params[i] = env.Args[f]
		}
		result, err := env.Client.Call(ctx, remote, params...)
		if err != nil {
			return err
		}
		print(env.Out, result)
		return nil
	}
}

// withParams calls remote with a single parameter object built from the
// operation's flag rules.
func withParams(remote string, rules []translate.Rule, print printer) Handler {
	return func(ctx context.Context, env Env) error {
		result, err := env.Client.Call(ctx, remote, translate.Apply(env.Args, rules))
		if err != nil {
			return err
		}
		print(env.Out, result)
		return nil
	}
}

// serverList calls remote with the comma separated server ids and the load
// balancer id.
func serverList(remote string, print printer) Handler {
	return func(ctx context.Context, env Env) error {
		result, err := env.Client.Call(ctx, remote, translate.List(env.Args["srvid"]), env.Args["bid"])
		if err != nil {
			return err
		}
		print(env.Out, result)
		return nil
	}
}

// internetAccess toggles internet access for a LAN.
func internetAccess(enable bool) Handler {
	return func(ctx context.Context, env Env) error {
		_, err := env.Client.Call(ctx, "setInternetAccess", env.Args["dcid"], env.Args["lanid"], enable)
		if err != nil {
			return err
		}
		env.Out.OperationCompleted()
		return nil
	}
}

// firewallRule adds one rule, built from the firewall flags, to the firewall
// of the resource named by idFlag.
func firewallRule(remote, idFlag string) Handler {
	return func(ctx context.Context, env Env) error {
		rule := translate.Apply(env.Args, firewallRules)
		result, err := env.Client.Call(ctx, remote, env.Args[idFlag], []any{rule})
		if err != nil {
			return err
		}
		if fw := api.AsObject(result); fw != nil && fw.Has("firewallId") {
			env.Out.Firewall(fw)
			return nil
		}
		env.Out.OperationCompleted()
		return nil
	}
}

// setImageOsType passes the OS type upper-cased.
func setImageOsType(ctx context.Context, env Env) error {
	_, err := env.Client.Call(ctx, "setImageOsType", env.Args["imgid"], translate.Upper(env.Args["ostype"]))
	if err != nil {
		return err
	}
	env.Out.OperationCompleted()
	return nil
}
