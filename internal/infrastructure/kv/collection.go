package kv

import (
	"context"
	"fmt"
)

// collection lista JSON guardada bajo una sola clave. Las escrituras hacen
// lectura-modificación-escritura con el candado de la clave tomado.
type collection[T any] struct {
	store  Store
	locker Locker
	key    string
}

func (c *collection[T]) all(ctx context.Context) ([]T, error) {
	var list []T
	if _, err := c.store.Get(ctx, c.key, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func (c *collection[T]) mutate(ctx context.Context, fn func(list []T) ([]T, error)) (err error) {
	lock, err := c.locker.Obtain(ctx, c.key, DefaultLockTTL)
	if err != nil {
		return err
	}
	defer func() {
		if rerr := lock.Release(ctx); rerr != nil && err == nil {
			err = fmt.Errorf("liberar candado %s: %w", c.key, rerr)
		}
	}()

	list, err := c.all(ctx)
	if err != nil {
		return err
	}
	list, err = fn(list)
	if err != nil {
		return err
	}
	if list == nil {
		list = []T{}
	}
	return c.store.Set(ctx, c.key, list)
}
