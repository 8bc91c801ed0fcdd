package instance

import (
	"github.com/shirokodev/presence-relay/data/model"
)

type Instances struct {
	Discord    Discord
	Relay      Relay
	Prometheus Prometheus
	Modelizer  model.Modelizer
}
