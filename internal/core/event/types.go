package event

import "github.com/promptplay/gamecore/internal/core/ecs"

// World change events. Component kinds are carried as their presence index so
// this package does not depend on the component set.

type EntityCreated struct {
	EntityID ecs.EntityID
	Name     string
}

type EntityDestroyed struct {
	EntityID ecs.EntityID
	Name     string
}

type EntityRenamed struct {
	EntityID ecs.EntityID
	From, To string
}

type ComponentAdded struct {
	EntityID  ecs.EntityID
	Component ecs.ComponentID
	Replaced  bool
}

type ComponentRemoved struct {
	EntityID  ecs.EntityID
	Component ecs.ComponentID
}

type TagAdded struct {
	EntityID ecs.EntityID
	Tag      string
}

type TagRemoved struct {
	EntityID ecs.EntityID
	Tag      string
}
