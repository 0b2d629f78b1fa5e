/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package entity

// Entity is a thing that can be uniquely identified.
type Entity interface {
	// GetID returns the ID of the entity.
	GetID() ID
}
