package levels

import (
	"embed"
	"io/fs"
	"log/slog"
	"path"
	"strings"

	"beamgrid/internal/level"
	"beamgrid/internal/mapload"
)

//go:embed maps/*.tmx
var mapFS embed.FS

// Embedded maps, in play order.
var mapOrder = []string{"intro", "intro_mix", "hook_something"}

func init() {
	for _, name := range mapOrder {
		file := path.Join("maps", name+".tmx")
		Register(name, func(log *slog.Logger) (*level.Level, error) {
			return mapload.LoadFS(mapFS, file, mapload.WithLogger(log))
		})
	}
	Register("void-bridge", voidBridge)
	Register("sandbox", sandbox)
}

// EmbeddedMaps lists the .tmx files compiled into the binary.
func EmbeddedMaps() ([]string, error) {
	files, err := fs.Glob(mapFS, "maps/*.tmx")
	if err != nil {
		return nil, err
	}
	for i, f := range files {
		files[i] = strings.TrimSuffix(path.Base(f), ".tmx")
	}
	return files, nil
}
