package cli

import (
	"fmt"

	"github.com/sgreene/habitat/internal/constants"
	"github.com/sgreene/habitat/internal/engine"
	"github.com/sgreene/habitat/internal/models"
)

type IdentityCmd struct {
	Add    IdentityAddCmd    `cmd:"" help:"Add a new identity."`
	List   IdentityListCmd   `cmd:"" help:"List identities."`
	Edit   IdentityEditCmd   `cmd:"" help:"Edit an identity."`
	Delete IdentityDeleteCmd `cmd:"" help:"Delete an identity (habits move to general)."`
	Filter IdentityFilterCmd `cmd:"" help:"Set the active identity filter."`
}

type IdentityAddCmd struct {
	Name  string `arg:"" help:"Identity name."`
	Color string `help:"Hex color." default:"#4A90D9"`
}

func (c *IdentityAddCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	if _, err := FindIdentityByName(snapshot, c.Name); err == nil {
		return fmt.Errorf("identity with name %q already exists", c.Name)
	}

	action := engine.AddIdentity{Identity: models.Identity{Name: c.Name, Color: c.Color}}
	if _, err := ctx.Dispatch(snapshot, action); err != nil {
		return err
	}
	fmt.Printf("Added identity: %s\n", c.Name)
	return nil
}

type IdentityListCmd struct{}

func (c *IdentityListCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	for _, identity := range snapshot.Identities {
		owned := 0
		for _, h := range snapshot.Habits {
			if h.IdentityID == identity.ID {
				owned++
			}
		}
		active := ""
		if snapshot.Prefs.IdentityFilter == identity.ID {
			active = " [active filter]"
		}
		fmt.Printf("%s (%s, %d habits)%s\n", identity.Name, identity.Color, owned, active)
	}
	return nil
}

type IdentityEditCmd struct {
	Name   string `arg:"" help:"Identity name."`
	Rename string `help:"New name." default:""`
	Color  string `help:"New hex color." default:""`
}

func (c *IdentityEditCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	identity, err := FindIdentityByName(snapshot, c.Name)
	if err != nil {
		return err
	}
	if c.Rename != "" {
		identity.Name = c.Rename
	}
	if c.Color != "" {
		identity.Color = c.Color
	}

	if _, err := ctx.Dispatch(snapshot, engine.UpdateIdentity{Identity: identity}); err != nil {
		return err
	}
	fmt.Printf("Updated identity: %s\n", identity.Name)
	return nil
}

type IdentityDeleteCmd struct {
	Name string `arg:"" help:"Identity name."`
}

func (c *IdentityDeleteCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	identity, err := FindIdentityByName(snapshot, c.Name)
	if err != nil {
		return err
	}
	if identity.ID == constants.GeneralIdentityID {
		return fmt.Errorf("the %q identity cannot be deleted", identity.Name)
	}

	if _, err := ctx.Dispatch(snapshot, engine.DeleteIdentity{IdentityID: identity.ID}); err != nil {
		return err
	}
	fmt.Printf("Deleted identity %s; its habits moved to %s\n", identity.Name, constants.GeneralIdentityName)
	return nil
}

type IdentityFilterCmd struct {
	Name string `arg:"" help:"Identity name, or 'all' to clear the filter."`
}

func (c *IdentityFilterCmd) Run(ctx *Context) error {
	snapshot, err := ctx.Store.Load()
	if err != nil {
		return err
	}

	filter := constants.AllIdentities
	if c.Name != constants.AllIdentities {
		identity, err := FindIdentityByName(snapshot, c.Name)
		if err != nil {
			return err
		}
		filter = identity.ID
	}

	if _, err := ctx.Dispatch(snapshot, engine.SetIdentityFilter{IdentityID: filter}); err != nil {
		return err
	}
	fmt.Printf("Identity filter: %s\n", c.Name)
	return nil
}
