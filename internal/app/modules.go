package app

import (
	"io"

	"github.com/vk/gridtask/internal/handlers"
	"github.com/vk/gridtask/modules/dotenv"
	"github.com/vk/gridtask/modules/exec"
	"github.com/vk/gridtask/modules/http"
	"github.com/vk/gridtask/modules/print"
	"github.com/vk/gridtask/modules/s3"
	"github.com/vk/gridtask/modules/socketio"
)

// coreModules is the definitive list of all action modules compiled into the
// gridtask binary. Command output goes to outW and errW.
func coreModules(outW, errW io.Writer) []handlers.Module {
	return []handlers.Module{
		&dotenv.Module{},
		&exec.Module{Stdout: outW, Stderr: errW},
		&http.Module{},
		&print.Module{Out: outW},
		&s3.Module{},
		&socketio.Module{},
	}
}
