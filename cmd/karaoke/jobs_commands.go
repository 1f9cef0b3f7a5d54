package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"karaoke/internal/api"
	"karaoke/internal/jobs"
)

func newJobsCommand(ctx *commandContext) *cobra.Command {
	jobsCmd := &cobra.Command{
		Use:   "jobs",
		Short: "Inspect queued and finished jobs",
	}
	jobsCmd.AddCommand(newJobsListCommand(ctx))
	jobsCmd.AddCommand(newJobsShowCommand(ctx))
	return jobsCmd
}

func newJobsListCommand(ctx *commandContext) *cobra.Command {
	var statusFlags []string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List jobs, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			statuses := make([]jobs.Status, 0, len(statusFlags))
			for _, value := range statusFlags {
				status, err := jobs.ParseStatus(value)
				if err != nil {
					return err
				}
				statuses = append(statuses, status)
			}

			return ctx.withStore(func(store *jobs.Store) error {
				list, err := api.NewJobService(store).List(cmd.Context(), statuses...)
				if err != nil {
					return err
				}
				if jsonOutput {
					return writeJSON(cmd, api.JobListResponse{Jobs: list})
				}
				out := cmd.OutOrStdout()
				if len(list) == 0 {
					fmt.Fprintln(out, "No jobs")
					return nil
				}
				fmt.Fprintln(out, jobsTable(list))
				return nil
			})
		},
	}

	cmd.Flags().StringSliceVarP(&statusFlags, "status", "s", nil, "Filter by status (pending, running, completed, failed)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print jobs as JSON")
	return cmd
}

func newJobsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a single job",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withStore(func(store *jobs.Store) error {
				job, err := api.NewJobService(store).Describe(cmd.Context(), id)
				if err != nil {
					return err
				}
				if job == nil {
					return fmt.Errorf("job %s not found", id)
				}
				if jsonOutput {
					return writeJSON(cmd, api.JobResponse{Job: *job})
				}
				out := cmd.OutOrStdout()
				fmt.Fprintf(out, "ID:       %s\n", job.ID)
				fmt.Fprintf(out, "Kind:     %s\n", job.Kind)
				fmt.Fprintf(out, "Status:   %s\n", job.Status)
				fmt.Fprintf(out, "Created:  %s\n", job.CreatedAt)
				if job.StartedAt != "" {
					fmt.Fprintf(out, "Started:  %s\n", job.StartedAt)
				}
				if job.FinishedAt != "" {
					fmt.Fprintf(out, "Finished: %s\n", job.FinishedAt)
				}
				if job.ErrorMessage != "" {
					fmt.Fprintf(out, "Error:    %s (%s", job.ErrorMessage, job.ErrorKind)
					if job.FailedStage != "" {
						fmt.Fprintf(out, ", stage %s", job.FailedStage)
					}
					fmt.Fprintln(out, ")")
				}
				if len(job.Request) > 0 {
					fmt.Fprintf(out, "Request:  %s\n", job.Request)
				}
				if len(job.Result) > 0 {
					fmt.Fprintf(out, "Result:   %s\n", job.Result)
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the job as JSON")
	return cmd
}

func jobsTable(list []api.Job) string {
	tableRows := make([][]string, 0, len(list))
	for _, job := range list {
		detail := job.FinishedAt
		if job.ErrorMessage != "" {
			detail = job.ErrorKind
		}
		tableRows = append(tableRows, []string{job.ID, job.Kind, job.Status, job.CreatedAt, detail})
	}
	return renderTable(
		[]string{"ID", "Kind", "Status", "Created", "Finished / Error"},
		tableRows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignLeft},
	)
}
