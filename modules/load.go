package modules

import (
	"github.com/nimbusdesk/nimbusdesk/modules/core"
	"github.com/nimbusdesk/nimbusdesk/pkg/application"
)

var BuiltInModules = []application.Module{
	core.NewModule(),
}

func Load(app application.Application, mods ...application.Module) error {
	for _, module := range mods {
		if err := module.Register(app); err != nil {
			return err
		}
	}
	return nil
}
