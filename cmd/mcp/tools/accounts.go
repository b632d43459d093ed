package tools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/cmd/mcp/response"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/model"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service"
	"github.com/reachskumar/ai-ops-guardian-angel-sub007/service/credentials"
	syncsvc "github.com/reachskumar/ai-ops-guardian-angel-sub007/service/sync"
)

// RegisterAccountTools registers account lifecycle and credential tools
func RegisterAccountTools(s *server.MCPServer, repo service.AccountRepository, validator credentials.Validator, syncer syncsvc.SyncService) {
	s.AddTool(
		mcp.NewTool("cloud_validate_credentials",
			mcp.WithDescription("Validate a cloud credential bundle. Format checks always run; the live tier additionally performs a minimal authenticated call"),
			mcp.WithString("provider", mcp.Required(), mcp.Description("One of: aws, azure, gcp")),
			mcp.WithString("credentials", mcp.Required(), mcp.Description("Credential bundle as JSON. For GCP, the service account key itself")),
			mcp.WithBoolean("live", mcp.Description("Also run the live validation tier")),
		),
		makeValidateCredentialsHandler(validator),
	)

	s.AddTool(
		mcp.NewTool("cloud_connect_account",
			mcp.WithDescription("Connect a cloud account: validate the credential format and store the account record"),
			mcp.WithString("provider", mcp.Required(), mcp.Description("One of: aws, azure, gcp")),
			mcp.WithString("credentials", mcp.Required(), mcp.Description("Credential bundle as JSON")),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("Owner of the account")),
			mcp.WithString("name", mcp.Description("Display name for the account")),
		),
		makeConnectAccountHandler(repo, validator),
	)

	s.AddTool(
		mcp.NewTool("cloud_list_accounts",
			mcp.WithDescription("List connected cloud accounts for a user, without credentials"),
			mcp.WithString("user_id", mcp.Required(), mcp.Description("Owner of the accounts")),
		),
		makeListAccountsHandler(repo),
	)

	s.AddTool(
		mcp.NewTool("cloud_sync_account",
			mcp.WithDescription("Synchronize one connected account: validate its credentials and refresh its cloud snapshot. At most one sync runs per account at a time"),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("The connected account to synchronize")),
		),
		makeSyncAccountHandler(syncer),
	)

	s.AddTool(
		mcp.NewTool("cloud_sync_status",
			mcp.WithDescription("Report the synchronization state of one connected account"),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("The connected account to inspect")),
		),
		makeSyncStatusHandler(syncer),
	)

	s.AddTool(
		mcp.NewTool("cloud_disconnect_account",
			mcp.WithDescription("Disconnect an account, removing its record and purging its sync state"),
			mcp.WithString("account_id", mcp.Required(), mcp.Description("The account to disconnect")),
		),
		makeDisconnectAccountHandler(syncer),
	)
}

func makeValidateCredentialsHandler(validator credentials.Validator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		provider, err := request.RequireString("provider")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := request.RequireString("credentials")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, err := credentials.ParseBundle(model.Provider(provider), []byte(raw))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to parse credentials: %v", err)), nil
		}

		result := validator.Validate(ctx, bundle, request.GetBool("live", false))
		data, _ := json.MarshalIndent(response.ConvertValidationResult(result), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeConnectAccountHandler(repo service.AccountRepository, validator credentials.Validator) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		provider, err := request.RequireString("provider")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		raw, err := request.RequireString("credentials")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		userID, err := request.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		bundle, err := credentials.ParseBundle(model.Provider(provider), []byte(raw))
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to parse credentials: %v", err)), nil
		}

		if result := validator.Validate(ctx, bundle, false); !result.Valid {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid credentials: %s", result.ErrorMessage())), nil
		}

		account := model.CloudAccount{
			ID:       uuid.NewString(),
			UserID:   userID,
			Name:     request.GetString("name", provider+" account"),
			Provider: model.Provider(provider),
			Bundle:   bundle,
		}
		if err := repo.Put(account); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to store account: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertAccount(account), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeListAccountsHandler(repo service.AccountRepository) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		userID, err := request.RequireString("user_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		accounts := repo.ListByUser(userID)
		converted := make([]response.Account, 0, len(accounts))
		for _, account := range accounts {
			converted = append(converted, response.ConvertAccount(account))
		}

		data, _ := json.MarshalIndent(converted, "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeSyncAccountHandler(syncer syncsvc.SyncService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accountID, err := request.RequireString("account_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		state, err := syncer.SyncAccount(ctx, accountID)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Failed to sync account: %v", err)), nil
		}

		data, _ := json.MarshalIndent(response.ConvertSyncState(state), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeSyncStatusHandler(syncer syncsvc.SyncService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accountID, err := request.RequireString("account_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		data, _ := json.MarshalIndent(response.ConvertSyncState(syncer.Status(accountID)), "", "  ")
		return mcp.NewToolResultText(string(data)), nil
	}
}

func makeDisconnectAccountHandler(syncer syncsvc.SyncService) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		accountID, err := request.RequireString("account_id")
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}

		if !syncer.Disconnect(accountID) {
			return mcp.NewToolResultError(fmt.Sprintf("Unknown account %q", accountID)), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Account %s disconnected", accountID)), nil
	}
}
