package model

import (
	"github.com/shirokodev/presence-relay/data/structures"
)

type Modelizer interface {
	Presence(v structures.Presence) PresenceModel
}

type modelizer struct{}

func NewInstance() Modelizer {
	return &modelizer{}
}
