/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package main

import (
	"github.com/spf13/cobra"

	"github.com/suparena/docrepo"
	"github.com/suparena/docrepo/entity"
	"github.com/suparena/docrepo/internal/items"
	"github.com/suparena/docrepo/repository"
)

func createCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an item",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec := items.Spec{}

			name, _ := cmd.Flags().GetString("name")
			parsedName, err := items.ParseName(name)
			if err != nil {
				return err
			}
			spec.Name = parsedName

			size, _ := cmd.Flags().GetString("size")
			parsedSize, err := items.ParseSize(size)
			if err != nil {
				return err
			}
			spec.Size = parsedSize

			svc, err := a.itemService(cmd.Context())
			if err != nil {
				return err
			}
			item, err := svc.CreateItem(cmd.Context(), spec)
			if err != nil {
				return err
			}
			return printJSON(a.out, item)
		},
	}

	cmd.Flags().String("name", "", "Item name")
	cmd.Flags().String("size", "", "Item size: Small, Medium or Large")

	return cmd
}

func getCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.itemService(cmd.Context())
			if err != nil {
				return err
			}
			item, err := svc.Item(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printJSON(a.out, item)
		},
	}
}

func listCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List items, optionally filtered and paged",
		Long: "List items matching every filter flag given. --offset/--limit select a window; " +
			"--page/--page-size are a 1-based alternative to --offset.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			filter, err := listFilter(cmd)
			if err != nil {
				return err
			}

			svc, err := a.itemService(cmd.Context())
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			paged := flags.Changed("offset") || flags.Changed("limit") || flags.Changed("page") || flags.Changed("page-size")
			if !paged {
				found, err := svc.FindItems(cmd.Context(), filter)
				if err != nil {
					return err
				}
				return printJSON(a.out, found)
			}

			offset, _ := flags.GetInt("offset")
			limit, _ := flags.GetInt("limit")
			if flags.Changed("page") || flags.Changed("page-size") {
				page, _ := flags.GetInt("page")
				pageSize, _ := flags.GetInt("page-size")
				offset, limit = repository.PageOffset(page, pageSize), pageSize
			}

			found, err := svc.ItemsPage(cmd.Context(), filter, offset, limit)
			if err != nil {
				return err
			}
			return printJSON(a.out, found)
		},
	}

	cmd.Flags().String("name", "", "Only items with this name")
	cmd.Flags().String("size", "", "Only items of this size")
	cmd.Flags().Int("offset", 0, "Number of matching items to skip")
	cmd.Flags().Int("limit", 20, "Maximum number of items to return")
	cmd.Flags().Int("page", 1, "Page number, starting at 1")
	cmd.Flags().Int("page-size", 20, "Items per page")
	cmd.MarkFlagsMutuallyExclusive("offset", "page")
	cmd.MarkFlagsMutuallyExclusive("limit", "page-size")

	return cmd
}

func listFilter(cmd *cobra.Command) (items.Filter, error) {
	filter := items.Filter{}

	if cmd.Flags().Changed("name") {
		value, _ := cmd.Flags().GetString("name")
		name, err := items.ParseName(value)
		if err != nil {
			return filter, err
		}
		filter.Name = &name
	}

	if cmd.Flags().Changed("size") {
		value, _ := cmd.Flags().GetString("size")
		size, err := items.ParseSize(value)
		if err != nil {
			return filter, err
		}
		filter.Size = &size
	}

	return filter, nil
}

func updateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Change the name or size of an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			patch := items.Patch{ID: id}

			if cmd.Flags().Changed("name") {
				value, _ := cmd.Flags().GetString("name")
				name, err := items.ParseName(value)
				if err != nil {
					return err
				}
				patch.Name = &name
			}

			if cmd.Flags().Changed("size") {
				value, _ := cmd.Flags().GetString("size")
				size, err := items.ParseSize(value)
				if err != nil {
					return err
				}
				patch.Size = &size
			}

			svc, err := a.itemService(cmd.Context())
			if err != nil {
				return err
			}
			item, err := svc.UpdateItem(cmd.Context(), patch)
			if err != nil {
				return err
			}
			return printJSON(a.out, item)
		},
	}

	cmd.Flags().String("name", "", "New item name")
	cmd.Flags().String("size", "", "New item size")

	return cmd
}

func deleteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := entity.ParseID(args[0])
			if err != nil {
				return err
			}
			svc, err := a.itemService(cmd.Context())
			if err != nil {
				return err
			}
			if err := svc.DeleteItem(cmd.Context(), id); err != nil {
				return err
			}
			return printJSON(a.out, map[string]string{"deleted": id.String()})
		},
	}
}

func versionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return printJSON(a.out, docrepo.GetVersionInfo())
		},
	}
}
