package service

import (
	"testing"

	"github.com/fatosaurus/HouseofRojanatorn-sub000/internal/model/entity"
)

func TestBuildStepsNormalizesAndDedupes(t *testing.T) {
	steps, err := buildSteps([]WorkflowStepRequest{
		{Key: "Stone Setting", Label: "Stone Setting", SortOrder: 2},
		{Key: "stone_setting", Label: "Duplicate", SortOrder: 5},
		{Key: "Approved", SortOrder: 1},
	})
	if err != nil {
		t.Fatalf("buildSteps: %v", err)
	}

	if len(steps) != 2 {
		t.Fatalf("Expected 2 steps after dedupe, got %d", len(steps))
	}
	if steps[0].Key != "approved" || steps[1].Key != "stone_setting" {
		t.Errorf("Unexpected order: %q, %q", steps[0].Key, steps[1].Key)
	}
	// 重复key保留首次出现的配置
	if steps[1].Label != "Stone Setting" {
		t.Errorf("Expected first occurrence kept, got label %q", steps[1].Label)
	}
	// label缺省时用key
	if steps[0].Label != "approved" {
		t.Errorf("Expected label fallback to key, got %q", steps[0].Label)
	}
}

func TestBuildStepsRejectsEmptyKey(t *testing.T) {
	if _, err := buildSteps([]WorkflowStepRequest{{Key: "ภาษาไทย"}}); !IsValidationError(err) {
		t.Errorf("Expected validation error for unmappable key, got %v", err)
	}
}

func TestBuildStepsRequiresActiveStep(t *testing.T) {
	inactive := false
	_, err := buildSteps([]WorkflowStepRequest{
		{Key: "approved", IsActive: &inactive},
	})
	if !IsValidationError(err) {
		t.Errorf("Expected validation error when no step is active, got %v", err)
	}
}

func TestBuildFieldsKeepsSystemFields(t *testing.T) {
	fields, err := buildFields([]CustomFieldRequest{
		{Key: "Metal Type", Type: entity.FieldTypeSelect, Options: []string{"18K", "22K"}, SortOrder: 3},
	})
	if err != nil {
		t.Fatalf("buildFields: %v", err)
	}

	byKey := make(map[string]entity.CustomFieldDef)
	for _, f := range fields {
		byKey[f.Key] = f
	}

	if _, ok := byKey["metal_type"]; !ok {
		t.Errorf("Expected normalized key metal_type, got %v", fields)
	}

	// 系统字段自动以隐藏状态补回
	designer, ok := byKey[entity.SystemFieldDesigner]
	if !ok {
		t.Fatal("Designer system field missing")
	}
	if designer.IsActive {
		t.Error("Re-added system field should be hidden")
	}
	if !designer.IsSystem {
		t.Error("Re-added system field should keep IsSystem")
	}
}

func TestBuildFieldsSystemKeyNotNormalized(t *testing.T) {
	fields, err := buildFields([]CustomFieldRequest{
		{Key: entity.SystemFieldDesigner, Label: "Designer"},
		{Key: entity.SystemFieldCraftsman, Label: "Craftsman"},
	})
	if err != nil {
		t.Fatalf("buildFields: %v", err)
	}
	for _, f := range fields {
		if f.Key == "designername" || f.Key == "craftsmanname" {
			t.Errorf("System key was normalized: %q", f.Key)
		}
		if !f.IsSystem {
			t.Errorf("Field %q should be flagged as system", f.Key)
		}
	}
}

func TestBuildFieldsRejectsUnknownType(t *testing.T) {
	if _, err := buildFields([]CustomFieldRequest{{Key: "foo", Type: "checkbox"}}); !IsValidationError(err) {
		t.Errorf("Expected validation error for unknown type, got %v", err)
	}
}

func TestValidateStageRequirement(t *testing.T) {
	registry := map[string]entity.WorkflowStep{
		"photography":   {Key: "photography", RequirePhoto: true, IsActive: true},
		"quality_check": {Key: "quality_check", RequireComment: true, IsActive: true},
		"polishing":     {Key: "polishing", IsActive: true},
	}

	if err := ValidateStageRequirement(registry, "photography", StageEvidence{}); !IsValidationError(err) {
		t.Errorf("Expected photo requirement failure, got %v", err)
	}
	if err := ValidateStageRequirement(registry, "photography", StageEvidence{HasPhoto: true}); err != nil {
		t.Errorf("Photo provided, expected pass, got %v", err)
	}
	if err := ValidateStageRequirement(registry, "quality_check", StageEvidence{HasPhoto: true}); !IsValidationError(err) {
		t.Errorf("Expected comment requirement failure, got %v", err)
	}
	if err := ValidateStageRequirement(registry, "quality_check", StageEvidence{HasComment: true}); err != nil {
		t.Errorf("Comment provided, expected pass, got %v", err)
	}
	if err := ValidateStageRequirement(registry, "polishing", StageEvidence{}); err != nil {
		t.Errorf("Step without requirements should pass, got %v", err)
	}
	// 未知工序放行
	if err := ValidateStageRequirement(registry, "vanished", StageEvidence{}); err != nil {
		t.Errorf("Unknown step should pass, got %v", err)
	}
}
