package complete

import "strings"

// specifiers lists the arguments each declaration macro accepts.
var specifiers = map[string][]string{
	"UPROPERTY": {
		"EditAnywhere", "EditDefaultsOnly", "EditInstanceOnly",
		"VisibleAnywhere", "VisibleDefaultsOnly", "VisibleInstanceOnly",
		"BlueprintReadWrite", "BlueprintReadOnly", "BlueprintHidden",
		"NotEditable", "NotVisible", "EditConst", "EditFixedSize",
		"Category", "Meta", "Keywords", "ToolTip", "DisplayName",
		"AdvancedDisplay", "Transient", "Replicated", "ReplicatedUsing",
		"ReplicationCondition", "DefaultComponent", "OverrideComponent",
		"RootComponent", "Attach", "AttachSocket", "ShowOnActor",
		"Interp", "Config", "SaveGame", "Instanced", "NotReplicated",
		"BlueprintSetter", "BlueprintGetter", "ExposeOnSpawn",
	},
	"UFUNCTION": {
		"BlueprintCallable", "BlueprintPure", "NotBlueprintCallable",
		"BlueprintEvent", "BlueprintOverride", "BlueprintAuthorityOnly",
		"CallInEditor", "Category", "Meta", "Keywords", "ToolTip",
		"DisplayName", "Server", "Client", "NetMulticast", "Reliable",
		"Unreliable", "WithValidation", "Exec", "Unsafe", "DevelopmentOnly",
		"NotAngelscriptCallable",
	},
	"UCLASS": {
		"Abstract", "Blueprintable", "NotBlueprintable", "BlueprintType",
		"NotBlueprintType", "Config", "DefaultConfig", "HideCategories",
		"ShowCategories", "ComponentWrapperClass", "Meta", "Transient",
		"NotPlaceable", "Placeable", "HideDropdown", "Deprecated",
		"DefaultToInstanced", "EditInlineNew", "ClassGroup", "Within",
	},
	"USTRUCT": {
		"BlueprintType", "NotBlueprintType", "Meta", "Atomic", "Immutable",
	},
	"UENUM": {
		"BlueprintType", "Meta", "Flags", "Bitflags",
	},
}

func (c *collector) specifiers() {
	ctx := c.r.ctx
	for _, name := range specifiers[ctx.Macro] {
		if hasFold(ctx.MacroArgs, name) {
			continue
		}
		if !c.matches(name) {
			continue
		}
		c.add(Item{Label: name, Kind: ItemSpecifier, Detail: ctx.Macro}, bucketLocal, "")
	}
}

func hasFold(list []string, s string) bool {
	for _, x := range list {
		if strings.EqualFold(x, s) {
			return true
		}
	}
	return false
}
