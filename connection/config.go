package connection

import (
	"crypto/md5"
	"encoding/base64"
	"fmt"
	"strings"

	"bankgo/utils"
)

type Config struct {
	// Endpoint, when set, replaces Host and IsSecure.
	Endpoint    string `mapstructure:"endpoint"`
	Host        string `mapstructure:"host"`
	Token       string `mapstructure:"token"`
	IsSecure    bool   `mapstructure:"isSecure"`
	MaxReferrer int    `mapstructure:"maxReferrer"`
}

func (p *Config) Hash() string {
	t := p.GetRpcEndpoint()
	sum := md5.Sum([]byte(t))
	return base64.StdEncoding.EncodeToString(sum[:])
}

func (p *Config) GetRpcEndpoint() string {
	if p.Endpoint != "" {
		return strings.TrimSuffix(p.Endpoint, "/") + utils.TT(p.Token == "", "", "/"+p.Token)
	}
	host := strings.TrimSuffix(p.Host, "/")
	return fmt.Sprintf("%s://%s",
		utils.TT(p.IsSecure, "https", "http"),
		host+(utils.TT(p.Token == "", "", "/"+p.Token)),
	)
}
