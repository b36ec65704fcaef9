package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/annel0/blockscene/internal/app"
	"github.com/annel0/blockscene/internal/camera"
	"github.com/annel0/blockscene/internal/edit"
	"github.com/annel0/blockscene/internal/render"
)

// errQuit: команда quit
var errQuit = errors.New("quit")

const helpText = `команды:
  look <dx> <dy>          смещение указателя
  key <name> down|up      клавиша движения (w s a d space shift q e)
  tick [n]                n кадров (по умолчанию 1)
  primary | secondary     удалить / поставить блок
  pick                    блок под прицелом и целевая ячейка
  render                  отрисовать кадр и вывести сводку
  stats                   состояние сцены
  quit                    выход`

// commandRunner исполняет текстовые команды над сценой
type commandRunner struct {
	scene *app.Scene
	out   io.Writer
}

// run выполняет одну строку. Пустая строка и комментарии (#) пропускаются.
func (r *commandRunner) run(ctx context.Context, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 || strings.HasPrefix(fields[0], "#") {
		return nil
	}

	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "look":
		if len(args) != 2 {
			return fmt.Errorf("использование: look <dx> <dy>")
		}
		dx, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return fmt.Errorf("dx: %w", err)
		}
		dy, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("dy: %w", err)
		}
		r.scene.OnPointerMove(dx, dy)

	case "key":
		if len(args) != 2 || (args[1] != "down" && args[1] != "up") {
			return fmt.Errorf("использование: key <name> down|up")
		}
		k, err := camera.ParseKey(args[0])
		if err != nil {
			return err
		}
		r.scene.OnKey(k, args[1] == "down")

	case "tick":
		n := 1
		if len(args) > 0 {
			v, err := strconv.Atoi(args[0])
			if err != nil || v < 1 {
				return fmt.Errorf("tick: ожидается положительное число, получено %q", args[0])
			}
			n = v
		}
		cubes := 0
		for i := 0; i < n; i++ {
			cubes = r.scene.Tick(1)
		}
		yaw, pitch := r.scene.Camera().Angles()
		fmt.Fprintf(r.out, "camera=%s yaw=%.2f pitch=%.2f cubes=%d\n", r.scene.Camera().Position(), yaw, pitch, cubes)

	case "primary", "secondary":
		b, _ := edit.ParseButton(cmd)
		res := r.scene.OnButton(ctx, b)
		fmt.Fprintln(r.out, res)

	case "pick":
		hit, ok := r.scene.Pick()
		target, _ := r.scene.Target()
		if !ok {
			fmt.Fprintf(r.out, "нет попадания; установка в %s\n", target)
			return nil
		}
		fmt.Fprintf(r.out, "попадание %s грань %s t=%.3f %s; установка в %s\n",
			hit.Cell, hit.Face, hit.Distance, hit.Ref, target)

	case "render":
		r.scene.Tick(0)
		if rec, ok := r.scene.Renderer().(*render.Recorder); ok {
			fmt.Fprintln(r.out, rec.Summary())
		}

	case "stats":
		fmt.Fprintln(r.out, r.scene.Stats())

	case "help":
		fmt.Fprintln(r.out, helpText)

	case "quit", "exit":
		return errQuit

	default:
		return fmt.Errorf("неизвестная команда %q (help выводит список команд)", cmd)
	}
	return nil
}

// readLines читает строки из in в канал до EOF
func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			lines <- sc.Text()
		}
	}()
	return lines
}
