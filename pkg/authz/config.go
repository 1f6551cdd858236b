package authz

import (
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/iota-uz/officelife/pkg/configuration"
)

// Config selects the casbin model and policy. Leaving both paths empty uses
// the built-in administrator > hr > user hierarchy.
type Config struct {
	ModelPath  string
	PolicyPath string
	Logger     *logrus.Logger
}

func (c Config) validate() error {
	if (c.ModelPath == "") != (c.PolicyPath == "") {
		return configError("model and policy paths must be set together")
	}
	return nil
}

func (c Config) normalized() Config {
	if c.ModelPath != "" {
		c.ModelPath = filepath.Clean(c.ModelPath)
		c.PolicyPath = filepath.Clean(c.PolicyPath)
	}
	return c
}

// DefaultConfig builds a Config using the global configuration singleton.
func DefaultConfig() Config {
	cfg := configuration.Use()
	return Config{
		ModelPath:  cfg.Authz.ModelPath,
		PolicyPath: cfg.Authz.PolicyPath,
		Logger:     cfg.Logger(),
	}
}

const builtinModel = `
[request_definition]
r = sub, floor

[policy_definition]
p = sub, floor

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.floor == p.floor
`

// builtinPolicies grants each role its own floor; grouping rules make a
// role inherit every floor below it.
var builtinPolicies = [][]string{
	{RoleAdministrator.subject(), RoleAdministrator.String()},
	{RoleHR.subject(), RoleHR.String()},
	{RoleUser.subject(), RoleUser.String()},
}

var builtinGroupings = [][]string{
	{RoleAdministrator.subject(), RoleHR.subject()},
	{RoleHR.subject(), RoleUser.subject()},
}
