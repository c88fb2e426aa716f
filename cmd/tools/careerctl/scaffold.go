// cmd/tools/careerctl/scaffold.go
package main

import (
	"bytes"
	"fmt"
	"go/format"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"career-workers/pkg/registry"
)

// workerData feeds the scaffold templates.
type workerData struct {
	Name        string
	PackageName string
	Dir         string
	TaskType    string
	Description string
	Timeout     string
	ErrorCodes  []string
	Input       []field
	Output      []field
}

type field struct {
	Name string
	Type string
	Tag  string
}

func newScaffoldCmd() *cobra.Command {
	var (
		outputDir string
		force     bool
	)

	cmd := &cobra.Command{
		Use:   "scaffold <taskType>",
		Short: "Generate a worker package from its activity registry entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.Embedded()
			if err != nil {
				return err
			}
			activity, ok := reg.Get(args[0])
			if !ok {
				return fmt.Errorf("task type %q is not in the activity registry", args[0])
			}
			data, err := newWorkerData(activity)
			if err != nil {
				return err
			}

			dir := filepath.Join(outputDir, data.Dir, activity.ID)
			if _, err := os.Stat(dir); err == nil && !force {
				return fmt.Errorf("%s already exists, use --force to overwrite", dir)
			}
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, name := range []string{"config.go", "models.go", "handler.go", "handler_test.go"} {
				path := filepath.Join(dir, name)
				src, err := render(name, data, filepath.ToSlash(filepath.Join("internal/workers", data.Dir, activity.ID, name)))
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, src, 0o644); err != nil {
					return err
				}
				fmt.Fprintf(out, "generated %s\n", path)
			}
			fmt.Fprintf(out, "register %s in cmd/worker-manager/main.go and configs/config.yaml\n", activity.TaskType)
			return nil
		},
	}
	cmd.Flags().StringVarP(&outputDir, "output", "o", "./internal/workers", "workers root directory")
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing worker directory")
	return cmd
}

func newWorkerData(a *registry.Activity) (*workerData, error) {
	timeout, err := a.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	return &workerData{
		Name:        a.DisplayName,
		PackageName: strings.ReplaceAll(a.ID, "-", ""),
		Dir:         categoryDir(a.Category),
		TaskType:    a.TaskType,
		Description: a.Description,
		Timeout:     durationLiteral(timeout),
		ErrorCodes:  a.ErrorCodes,
		Input:       schemaFields(a.InputSchema),
		Output:      schemaFields(a.OutputSchema),
	}, nil
}

func categoryDir(category string) string {
	if category == "" {
		return "career"
	}
	return strings.ToLower(category)
}

func durationLiteral(d time.Duration) string {
	switch {
	case d <= 0:
		return "10 * time.Second"
	case d%time.Second == 0:
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	default:
		return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
	}
}

// schemaFields turns the top-level schema properties into struct fields,
// sorted by name. Properties outside "required" get omitempty.
func schemaFields(schema map[string]interface{}) []field {
	props, _ := schema["properties"].(map[string]interface{})
	required := map[string]bool{}
	if list, ok := schema["required"].([]interface{}); ok {
		for _, r := range list {
			if s, ok := r.(string); ok {
				required[s] = true
			}
		}
	}

	names := make([]string, 0, len(props))
	for name := range props {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]field, 0, len(names))
	for _, name := range names {
		details, _ := props[name].(map[string]interface{})
		tag := name
		if !required[name] {
			tag += ",omitempty"
		}
		fields = append(fields, field{
			Name: goName(name),
			Type: goType(details),
			Tag:  fmt.Sprintf("`json:\"%s\"`", tag),
		})
	}
	return fields
}

func goType(details map[string]interface{}) string {
	switch details["type"] {
	case "string":
		return "string"
	case "integer":
		return "int"
	case "number":
		return "float64"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

// goName exports a camelCase JSON name, keeping the Id suffix as ID.
func goName(name string) string {
	if name == "" {
		return name
	}
	out := strings.ToUpper(name[:1]) + name[1:]
	if strings.HasSuffix(out, "Id") {
		out = strings.TrimSuffix(out, "Id") + "ID"
	}
	return out
}

func render(name string, data *workerData, header string) ([]byte, error) {
	tmpl, err := template.New(name).Parse(scaffoldTemplates[name])
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// %s\n", header)
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render %s: %w", name, err)
	}
	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", name, err)
	}
	return src, nil
}

var scaffoldTemplates = map[string]string{
	"config.go": `package {{ .PackageName }}

import "time"

type Config struct {
	Timeout time.Duration
}

func LoadConfig() *Config {
	return &Config{
		Timeout: {{ .Timeout }},
	}
}
`,

	"models.go": `package {{ .PackageName }}

type Input struct {
{{- range .Input }}
	{{ .Name }} {{ .Type }} {{ .Tag }}
{{- end }}
}

type Output struct {
{{- range .Output }}
	{{ .Name }} {{ .Type }} {{ .Tag }}
{{- end }}
}
`,

	"handler.go": `package {{ .PackageName }}

import (
	"context"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/pkg/registry"
)

// {{ .Description }}
// Error codes:{{ range .ErrorCodes }} {{ . }}{{ end }}
const TaskType = "{{ .TaskType }}"

type Handler struct {
	config   *Config
	activity *registry.Activity
	errors   *errors.ErrorHandler
	logger   logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	activity, _ := registry.MustEmbedded().Get(TaskType)
	taskLog := log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:   config,
		activity: activity,
		errors:   errors.NewErrorHandler(taskLog),
		logger:   taskLog,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := h.activity.DecodeVariables(job.Variables, &input); err != nil {
		h.failJob(client, job, err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.execute(ctx, &input)
	if err != nil {
		h.failJob(client, job, err)
		return
	}

	h.completeJob(client, job, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	return &Output{}, nil
}

func (h *Handler) completeJob(client worker.JobClient, job entities.Job, output *Output) {
	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		h.logger.Error("failed to create complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	if _, err := cmd.Send(context.Background()); err != nil {
		h.logger.Error("failed to send complete job command", map[string]interface{}{
			"error": err,
		})
		return
	}
	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
}

func (h *Handler) failJob(client worker.JobClient, job entities.Job, err error) {
	metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.Normalize(err).Code)).Inc()
	h.errors.HandleJobError(context.Background(), client, job, err)
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
`,

	"handler_test.go": `package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"career-workers/internal/common/logger"
)

func createTestConfig() *Config {
	return LoadConfig()
}

func TestExecute(t *testing.T) {
	h := NewHandler(createTestConfig(), logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	require.NotNil(t, out)
}
`,
}
