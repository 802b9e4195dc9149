package app

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/xeipuuv/gojsonschema"

	wslui "github.com/wslui/wslui"
)

// requestSchema constrains the envelope a front-end may send. The args
// payload is validated per command by its handler.
const requestSchema = `{
	"type": "object",
	"required": ["command"],
	"additionalProperties": false,
	"properties": {
		"command": {"type": "string", "minLength": 1},
		"args": {"type": "object"}
	}
}`

// bridgeRequest is one line of the bridge protocol.
type bridgeRequest struct {
	Command string          `json:"command"`
	Args    json.RawMessage `json:"args,omitempty"`
}

// bridgeResponse is the answer to one request, on one line.
type bridgeResponse struct {
	OK     bool         `json:"ok"`
	Result any          `json:"result,omitempty"`
	Error  *bridgeError `json:"error,omitempty"`
}

type bridgeError struct {
	Kind    wslui.ErrorKind `json:"kind,omitempty"`
	Message string          `json:"message"`
}

type bridgeHandler func(ctx context.Context, args json.RawMessage) (any, error)

func (a *App) installServeCommand() {
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Run the local command bridge for the front-end",
		Long: "serve listens on a local endpoint (a named pipe on Windows, a unix\n" +
			"socket elsewhere) and answers newline-delimited JSON requests of the\n" +
			"form {\"command\": ..., \"args\": {...}}.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			address, err := cmd.Flags().GetString("address")
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), address)
		},
	}
	serve.Flags().String("address", "", "endpoint to listen on (default: the platform's)")

	a.rootCmd.AddCommand(serve)
}

func (a *App) serve(ctx context.Context, address string) error {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(requestSchema))
	if err != nil {
		return fmt.Errorf("could not compile request schema: %w", err)
	}

	listener, err := listen(address)
	if err != nil {
		return fmt.Errorf("could not listen: %w", err)
	}
	defer listener.Close()

	log.Infof("bridge listening on %s", listener.Addr())

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	handlers := a.bridgeHandlers()
	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, net.ErrClosed) {
				return nil
			}
			log.Warnf("accept failed: %v", err)
			continue
		}
		go a.handleConn(ctx, conn, schema, handlers)
	}
}

func (a *App) handleConn(ctx context.Context, conn net.Conn, schema *gojsonschema.Schema, handlers map[string]bridgeHandler) {
	defer conn.Close()

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	encoder := json.NewEncoder(conn)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		resp := a.dispatch(ctx, line, schema, handlers)
		if err := encoder.Encode(resp); err != nil {
			log.Warnf("could not write response: %v", err)
			return
		}
	}
}

// dispatch validates, decodes and routes one request line.
func (a *App) dispatch(ctx context.Context, line []byte, schema *gojsonschema.Schema, handlers map[string]bridgeHandler) bridgeResponse {
	result, err := schema.Validate(gojsonschema.NewBytesLoader(line))
	if err != nil {
		return errorResponse(wslui.ErrInvalidArgument, fmt.Sprintf("malformed request: %v", err))
	}
	if !result.Valid() {
		return errorResponse(wslui.ErrInvalidArgument, fmt.Sprintf("invalid request: %v", result.Errors()))
	}

	var req bridgeRequest
	if err := json.Unmarshal(line, &req); err != nil {
		return errorResponse(wslui.ErrInvalidArgument, fmt.Sprintf("malformed request: %v", err))
	}

	handler, ok := handlers[req.Command]
	if !ok {
		return errorResponse(wslui.ErrInvalidArgument, fmt.Sprintf("unknown command %q", req.Command))
	}

	log.Debugf("bridge: %s", req.Command)

	out, err := handler(ctx, req.Args)
	if err != nil {
		return errorResponse(wslui.KindOf(err), err.Error())
	}
	return bridgeResponse{OK: true, Result: out}
}

func errorResponse(kind wslui.ErrorKind, message string) bridgeResponse {
	return bridgeResponse{Error: &bridgeError{Kind: kind, Message: message}}
}

// decodeArgs fills dst from the request's args object. A missing args
// object leaves dst zero-valued.
func decodeArgs(raw json.RawMessage, dst any) error {
	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	return nil
}

// named is the args shape shared by the single-distro commands.
type named struct {
	Name string `json:"name"`
}

func (a *App) bridgeHandlers() map[string]bridgeHandler {
	void := func(call func(ctx context.Context, name string) error) bridgeHandler {
		return func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args named
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, call(ctx, args.Name)
		}
	}

	return map[string]bridgeHandler{
		"listDistributions": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.ListDistributions(ctx)
		},
		"startDistribution":      void(a.service.StartDistribution),
		"terminateDistribution":  void(a.service.TerminateDistribution),
		"restartDistribution":    void(a.service.RestartDistribution),
		"unregisterDistribution": void(a.service.UnregisterDistribution),
		"setDefaultDistribution": void(a.service.SetDefault),
		"installDistribution":    void(a.service.InstallDistribution),
		"openFileExplorer":       void(a.service.OpenFileExplorer),

		"shutdownAll": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return nil, a.service.ShutdownAll(ctx)
		},
		"update": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.Update(ctx)
		},
		"version": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.Version(ctx)
		},
		"preflight": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.Preflight(ctx)
		},
		"configDir": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.ConfigDir()
		},

		"importDistribution": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args struct {
				named
				TarPath    string `json:"tarPath"`
				InstallDir string `json:"installDir"`
				wslui.ImportOptions
			}
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, a.service.ImportDistribution(ctx, args.Name, args.TarPath, args.InstallDir, args.ImportOptions)
		},
		"exportDistribution": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args struct {
				named
				TarPath string `json:"tarPath"`
				wslui.ExportOptions
			}
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, a.service.ExportDistribution(ctx, args.Name, args.TarPath, args.ExportOptions)
		},

		"systemDistroInfo": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args named
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return a.service.SystemDistroInfo(ctx, args.Name)
		},
		"vhdSize": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args named
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return a.service.VhdSize(ctx, args.Name)
		},
		"compactDisk": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args named
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return a.service.CompactDisk(ctx, args.Name)
		},

		"mountDisk": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args struct {
				Disk string `json:"disk"`
				wslui.MountOptions
			}
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return a.service.MountDisk(ctx, args.Disk, args.MountOptions)
		},
		"unmountDisk": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args struct {
				Disk string `json:"disk"`
			}
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, a.service.UnmountDisk(ctx, args.Disk)
		},
		"listMountedDisks": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.ListMountedDisks(ctx)
		},
		"listPhysicalDisks": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.ListPhysicalDisks(ctx)
		},

		"vmUsage": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.VMUsage(ctx)
		},
		"systemTotalMemory": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.SystemTotalMemory(ctx)
		},
		"distroUsage": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args named
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return a.service.DistroUsage(ctx, args.Name)
		},
		"wslHealth": func(ctx context.Context, _ json.RawMessage) (any, error) {
			return a.service.WslHealth(ctx)
		},

		"openTerminal": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args struct {
				wslui.DistroRef
				Terminal wslui.Terminal `json:"terminal"`
			}
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, a.service.OpenTerminal(ctx, args.DistroRef, args.Terminal)
		},
		"openSystemTerminal": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args struct {
				Terminal wslui.Terminal `json:"terminal"`
			}
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, a.service.OpenSystemTerminal(ctx, args.Terminal)
		},
		"openTerminalWithCommand": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args struct {
				wslui.DistroRef
				Command  string         `json:"command"`
				Terminal wslui.Terminal `json:"terminal"`
			}
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, a.service.OpenTerminalWithCommand(ctx, args.DistroRef, args.Command, args.Terminal)
		},
		"openIDE": func(ctx context.Context, raw json.RawMessage) (any, error) {
			var args struct {
				named
				IDECommand string `json:"ideCommand"`
			}
			if err := decodeArgs(raw, &args); err != nil {
				return nil, err
			}
			return nil, a.service.OpenIDE(ctx, args.Name, args.IDECommand)
		},
	}
}
