// Package system checks that pinctl can reach AWS: credentials, region support,
// service endpoint resolution and the optional audit server.
package system

import (
	"context"
	"fmt"
	"net"
	"net/url"
	"strings"
	"time"

	"pinctl/internal/audit"
	"pinctl/internal/cmdlet"
	"pinctl/pkg/aws"
	"pinctl/pkg/logging"
)

// RequirementResult represents the result of a requirement check
type RequirementResult struct {
	Name       string `json:"name"`
	Passed     bool   `json:"passed"`
	Error      string `json:"error,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
	Detail     string `json:"detail,omitempty"`
}

// CheckOptions describes what to check
type CheckOptions struct {
	Region       string
	EndpointURL  string
	AuditURL     string
	AuditSubject string
	Profile      string
	// Credentials fails when the current credentials are rejected by STS
	Credentials func(ctx context.Context) error
}

// RequirementsChecker checks system requirements and dependencies
type RequirementsChecker struct {
	logger *logging.Logger
	opts   CheckOptions

	lookupHost   func(ctx context.Context, host string) ([]string, error)
	connectAudit func(url, subject string, logger *logging.Logger) (audit.Publisher, error)
}

// NewRequirementsChecker creates a new requirements checker
func NewRequirementsChecker(logger *logging.Logger, opts CheckOptions) *RequirementsChecker {
	return &RequirementsChecker{
		logger:       logger,
		opts:         opts,
		lookupHost:   net.DefaultResolver.LookupHost,
		connectAudit: audit.Connect,
	}
}

// serviceHosts are the endpoint host patterns of the three services
var serviceHosts = []struct {
	name    string
	pattern string
}{
	{"pinpoint", "pinpoint.%s.amazonaws.com"},
	{"pinpointemail", "email.%s.amazonaws.com"},
	{"pinpointsmsvoice", "sms-voice.pinpoint.%s.amazonaws.com"},
}

// CheckAll runs every check in order
func (c *RequirementsChecker) CheckAll(ctx context.Context) []RequirementResult {
	results := []RequirementResult{c.checkRegion()}
	results = append(results, c.checkCredentials(ctx))
	results = append(results, c.checkEndpoints(ctx)...)
	if c.opts.AuditURL != "" {
		results = append(results, c.checkAudit())
	}
	return results
}

// AllPassed reports whether every result passed
func AllPassed(results []RequirementResult) bool {
	for _, r := range results {
		if !r.Passed {
			return false
		}
	}
	return true
}

func messagingRegions() []string {
	var names []string
	for _, r := range aws.ListRegions() {
		if r.Messaging {
			names = append(names, r.Name)
		}
	}
	return names
}

func (c *RequirementsChecker) checkRegion() RequirementResult {
	result := RequirementResult{Name: "Pinpoint Region"}
	if c.opts.Region == "" {
		result.Error = "no region configured"
		result.Suggestion = "Set default_region with 'pinctl config init' or pass --region"
		return result
	}

	result.Detail = fmt.Sprintf("%s (%s)", c.opts.Region, aws.GetRegionDescription(c.opts.Region))
	if !aws.SupportsMessaging(c.opts.Region) {
		result.Error = fmt.Sprintf("%s has no known Pinpoint endpoints", c.opts.Region)
		result.Suggestion = "Use a Pinpoint region: " + strings.Join(messagingRegions(), ", ")
		return result
	}
	result.Passed = true
	return result
}

func (c *RequirementsChecker) checkCredentials(ctx context.Context) RequirementResult {
	result := RequirementResult{Name: "AWS Credentials"}
	if c.opts.Credentials == nil {
		result.Error = "no credential check configured"
		return result
	}

	if err := c.opts.Credentials(ctx); err != nil {
		c.logger.Debug("Credential validation failed", "error", err)
		result.Error = "AWS credentials are not valid or have expired"
		result.Suggestion = "Set --profile or refresh your AWS credentials (aws sso login, aws configure)"
		return result
	}
	result.Detail = "default credential chain"
	if c.opts.Profile != "" {
		result.Detail = "profile " + c.opts.Profile
	}
	result.Passed = true
	return result
}

// checkEndpoints resolves each service host, or only the override host when one is set
func (c *RequirementsChecker) checkEndpoints(ctx context.Context) []RequirementResult {
	if c.opts.EndpointURL != "" {
		result := RequirementResult{Name: "Endpoint override"}
		u, err := url.Parse(c.opts.EndpointURL)
		if err != nil || u.Hostname() == "" {
			result.Error = fmt.Sprintf("invalid endpoint URL %q", c.opts.EndpointURL)
			result.Suggestion = "Use a full URL such as http://localhost:4566"
			return []RequirementResult{result}
		}
		return []RequirementResult{c.resolve(ctx, result, u.Hostname())}
	}

	if c.opts.Region == "" {
		return nil
	}
	results := make([]RequirementResult, 0, len(serviceHosts))
	for _, svc := range serviceHosts {
		result := RequirementResult{Name: "Endpoint " + svc.name}
		results = append(results, c.resolve(ctx, result, fmt.Sprintf(svc.pattern, c.opts.Region)))
	}
	return results
}

func (c *RequirementsChecker) resolve(ctx context.Context, result RequirementResult, host string) RequirementResult {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	addrs, err := c.lookupHost(ctx, host)
	if err != nil {
		result.Error = cmdlet.TranslateError(err, c.opts.Region).Error()
		result.Suggestion = "Check network connectivity and DNS settings"
		return result
	}
	result.Detail = fmt.Sprintf("%s -> %s", host, strings.Join(addrs, ", "))
	result.Passed = true
	return result
}

func (c *RequirementsChecker) checkAudit() RequirementResult {
	result := RequirementResult{Name: "Audit Server", Detail: c.opts.AuditURL}
	publisher, err := c.connectAudit(c.opts.AuditURL, c.opts.AuditSubject, c.logger)
	if err != nil {
		result.Error = err.Error()
		result.Suggestion = "Check audit.nats_url or clear it to disable the audit feed"
		return result
	}
	publisher.Close()
	result.Passed = true
	return result
}
