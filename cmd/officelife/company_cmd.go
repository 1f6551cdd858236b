package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/iota-uz/officelife/modules/company/domain/aggregates/group"
	"github.com/iota-uz/officelife/modules/company/domain/aggregates/project"
	"github.com/iota-uz/officelife/modules/company/domain/entities/news"
	"github.com/iota-uz/officelife/modules/company/services"
)

func newProjectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "project",
		Short: "Company projects",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "close key=value...",
			Short: "Close a project",
			RunE: operation(func(a *app) func(context.Context, *services.CloseProjectRequest) (project.Project, error) {
				return a.company.ProjectService.CloseProject
			}),
		},
		&cobra.Command{
			Use:   "lead key=value...",
			Short: "Make an employee the project lead",
			RunE: operation(func(a *app) func(context.Context, *services.UpdateProjectLeadRequest) (project.Project, error) {
				return a.company.ProjectService.UpdateProjectLead
			}),
		},
	)
	return cmd
}

func newNewsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "news",
		Short: "Company news",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "create key=value...",
		Short: "Publish a company news item",
		RunE: operation(func(a *app) func(context.Context, *services.CreateNewsRequest) (news.News, error) {
			return a.company.NewsService.CreateCompanyNews
		}),
	})
	return cmd
}

func newAgendaCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "Group meeting agendas",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "update key=value...",
		Short: "Edit an agenda item of a meeting",
		RunE: operation(func(a *app) func(context.Context, *services.UpdateAgendaItemRequest) (group.AgendaItem, error) {
			return a.company.GroupService.UpdateAgendaItem
		}),
	})
	return cmd
}
