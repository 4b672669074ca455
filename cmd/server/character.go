package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soulforge/cultivation-api/internal/entities"
	charactersvc "github.com/soulforge/cultivation-api/internal/services/character"
)

var characterCmd = &cobra.Command{
	Use:   "character",
	Short: "Manage cultivation characters",
}

var (
	flagPlayerID  string
	flagName      string
	flagTalentID  string
	flagCharID    string
	flagItemID    string
	flagSlot      string
	flagStat      string
	flagAmount    int
	flagLevels    int
	flagQuantity  int
	flagSkipRoll  bool
	flagAll       bool
	flagHPLoss    int
	flagStones    int
	flagMaterials int
	flagBoosters  int
)

func init() {
	characterCmd.AddCommand(
		createCharacterCmd,
		getCharacterCmd,
		listCharactersCmd,
		deleteCharacterCmd,
		gainExpCmd,
		breakthroughCmd,
		inheritCmd,
		allocateCmd,
		equipCmd,
		unequipCmd,
		upgradeCmd,
		natalCmd,
		consumeCmd,
		statsCmd,
	)

	createCharacterCmd.Flags().StringVar(&flagPlayerID, "player", "", "owning player ID")
	createCharacterCmd.Flags().StringVar(&flagName, "name", "", "character name")
	createCharacterCmd.Flags().StringVar(&flagTalentID, "talent", "", "talent ID")
	_ = createCharacterCmd.MarkFlagRequired("player")
	_ = createCharacterCmd.MarkFlagRequired("name")

	getCharacterCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	_ = getCharacterCmd.MarkFlagRequired("id")

	listCharactersCmd.Flags().StringVar(&flagPlayerID, "player", "", "owning player ID")
	_ = listCharactersCmd.MarkFlagRequired("player")

	deleteCharacterCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	_ = deleteCharacterCmd.MarkFlagRequired("id")

	gainExpCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	gainExpCmd.Flags().IntVar(&flagAmount, "amount", 0, "experience to grant")
	_ = gainExpCmd.MarkFlagRequired("id")
	_ = gainExpCmd.MarkFlagRequired("amount")

	breakthroughCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	breakthroughCmd.Flags().BoolVar(&flagSkipRoll, "skip-roll", false, "bypass the exp gate and success roll")
	breakthroughCmd.Flags().IntVar(&flagHPLoss, "hp-loss", 0, "HP toll on a successful transition")
	_ = breakthroughCmd.MarkFlagRequired("id")

	inheritCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	inheritCmd.Flags().IntVar(&flagLevels, "levels", 1, "levels to advance")
	_ = inheritCmd.MarkFlagRequired("id")

	allocateCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	allocateCmd.Flags().StringVar(&flagStat, "stat", "", "attack, defense, maxhp, spirit, physique, or speed")
	allocateCmd.Flags().BoolVar(&flagAll, "all", false, "spend the whole free point balance")
	_ = allocateCmd.MarkFlagRequired("id")
	_ = allocateCmd.MarkFlagRequired("stat")

	equipCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	equipCmd.Flags().StringVar(&flagItemID, "item", "", "inventory item ID")
	equipCmd.Flags().StringVar(&flagSlot, "slot", "", "target slot (optional)")
	_ = equipCmd.MarkFlagRequired("id")
	_ = equipCmd.MarkFlagRequired("item")

	unequipCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	unequipCmd.Flags().StringVar(&flagSlot, "slot", "", "slot to clear")
	_ = unequipCmd.MarkFlagRequired("id")
	_ = unequipCmd.MarkFlagRequired("slot")

	upgradeCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	upgradeCmd.Flags().StringVar(&flagItemID, "item", "", "item to upgrade")
	upgradeCmd.Flags().IntVar(&flagStones, "stones", 0, "spirit stone cost")
	upgradeCmd.Flags().IntVar(&flagMaterials, "materials", 0, "upgrade stone cost")
	upgradeCmd.Flags().IntVar(&flagBoosters, "boosters", 0, "boosters to consume")
	_ = upgradeCmd.MarkFlagRequired("id")
	_ = upgradeCmd.MarkFlagRequired("item")

	natalCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	natalCmd.Flags().StringVar(&flagItemID, "item", "", "item to bind")
	_ = natalCmd.MarkFlagRequired("id")
	_ = natalCmd.MarkFlagRequired("item")

	consumeCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	consumeCmd.Flags().StringVar(&flagItemID, "item", "", "consumable item ID")
	consumeCmd.Flags().IntVar(&flagQuantity, "quantity", 1, "units to consume")
	_ = consumeCmd.MarkFlagRequired("id")
	_ = consumeCmd.MarkFlagRequired("item")

	statsCmd.Flags().StringVar(&flagCharID, "id", "", "character ID")
	_ = statsCmd.MarkFlagRequired("id")
}

// withService runs fn against a fully wired service.
func withService(fn func(svc charactersvc.Service) error) error {
	svc, cleanup, err := buildService()
	if err != nil {
		return err
	}
	defer cleanup()
	return fn(svc)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printEvents(events []string) {
	for _, e := range events {
		fmt.Println(e)
	}
}

func parseStat(s string) (entities.Stat, error) {
	switch s {
	case "attack":
		return entities.StatAttack, nil
	case "defense":
		return entities.StatDefense, nil
	case "maxhp":
		return entities.StatMaxHP, nil
	case "spirit":
		return entities.StatSpirit, nil
	case "physique":
		return entities.StatPhysique, nil
	case "speed":
		return entities.StatSpeed, nil
	default:
		return "", fmt.Errorf("unknown stat %q", s)
	}
}

var createCharacterCmd = &cobra.Command{
	Use:   "create",
	Short: "Create a character at the starting realm",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.CreateCharacter(cmd.Context(), &charactersvc.CreateCharacterInput{
				PlayerID: flagPlayerID,
				Name:     flagName,
				TalentID: flagTalentID,
			})
			if err != nil {
				return err
			}
			return printJSON(out.Character)
		})
	},
}

var getCharacterCmd = &cobra.Command{
	Use:   "get",
	Short: "Fetch a character by ID",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.GetCharacter(cmd.Context(), &charactersvc.GetCharacterInput{CharacterID: flagCharID})
			if err != nil {
				return err
			}
			return printJSON(out.Character)
		})
	},
}

var listCharactersCmd = &cobra.Command{
	Use:   "list",
	Short: "List a player's characters",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.ListCharacters(cmd.Context(), &charactersvc.ListCharactersInput{PlayerID: flagPlayerID})
			if err != nil {
				return err
			}
			return printJSON(out.Characters)
		})
	},
}

var deleteCharacterCmd = &cobra.Command{
	Use:   "delete",
	Short: "Delete a character",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.DeleteCharacter(cmd.Context(), &charactersvc.DeleteCharacterInput{CharacterID: flagCharID})
			if err != nil {
				return err
			}
			fmt.Println(out.Message)
			return nil
		})
	},
}

var gainExpCmd = &cobra.Command{
	Use:   "gainexp",
	Short: "Grant cultivation experience",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.GainExp(cmd.Context(), &charactersvc.GainExpInput{
				CharacterID: flagCharID,
				Amount:      flagAmount,
			})
			if err != nil {
				return err
			}
			fmt.Printf("Exp %d/%d", out.Character.Exp, out.Character.MaxExp)
			if out.CanBreakthrough {
				fmt.Print(", ready to attempt a breakthrough")
			}
			fmt.Println()
			return nil
		})
	},
}

var breakthroughCmd = &cobra.Command{
	Use:   "breakthrough",
	Short: "Attempt to advance a level or realm",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.Breakthrough(cmd.Context(), &charactersvc.BreakthroughInput{
				CharacterID:   flagCharID,
				SkipRollCheck: flagSkipRoll,
				HPLossOnEntry: flagHPLoss,
			})
			if err != nil {
				return err
			}
			printEvents(out.Events)
			return nil
		})
	},
}

var inheritCmd = &cobra.Command{
	Use:   "inherit",
	Short: "Advance multiple levels in one batch",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.UseInheritance(cmd.Context(), &charactersvc.UseInheritanceInput{
				CharacterID: flagCharID,
				Levels:      flagLevels,
			})
			if err != nil {
				return err
			}
			printEvents(out.Events)
			return nil
		})
	},
}

var allocateCmd = &cobra.Command{
	Use:   "allocate",
	Short: "Spend attribute points on a stat",
	RunE: func(cmd *cobra.Command, args []string) error {
		stat, err := parseStat(flagStat)
		if err != nil {
			return err
		}
		return withService(func(svc charactersvc.Service) error {
			var events []string
			if flagAll {
				out, err := svc.AllocateAllAttributes(cmd.Context(), &charactersvc.AllocateAllAttributesInput{
					CharacterID: flagCharID,
					Stat:        stat,
				})
				if err != nil {
					return err
				}
				events = out.Events
			} else {
				out, err := svc.AllocateAttribute(cmd.Context(), &charactersvc.AllocateAttributeInput{
					CharacterID: flagCharID,
					Stat:        stat,
				})
				if err != nil {
					return err
				}
				events = out.Events
			}
			printEvents(events)
			return nil
		})
	},
}

var equipCmd = &cobra.Command{
	Use:   "equip",
	Short: "Equip an inventory item",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.EquipItem(cmd.Context(), &charactersvc.EquipItemInput{
				CharacterID: flagCharID,
				ItemID:      flagItemID,
				Slot:        entities.EquipSlot(flagSlot),
			})
			if err != nil {
				return err
			}
			printEvents(out.Events)
			return nil
		})
	},
}

var unequipCmd = &cobra.Command{
	Use:   "unequip",
	Short: "Clear an equipment slot",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.UnequipItem(cmd.Context(), &charactersvc.UnequipItemInput{
				CharacterID: flagCharID,
				Slot:        entities.EquipSlot(flagSlot),
			})
			if err != nil {
				return err
			}
			printEvents(out.Events)
			return nil
		})
	},
}

var upgradeCmd = &cobra.Command{
	Use:   "upgrade",
	Short: "Attempt a probabilistic item upgrade",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.UpgradeItem(cmd.Context(), &charactersvc.UpgradeItemInput{
				CharacterID:  flagCharID,
				ItemID:       flagItemID,
				CostStones:   flagStones,
				CostMaterial: flagMaterials,
				CostBoosters: flagBoosters,
			})
			if err != nil {
				return err
			}
			printEvents(out.Events)
			return nil
		})
	},
}

var natalCmd = &cobra.Command{
	Use:   "natal",
	Short: "Bind an item as the natal artifact",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.SetNatal(cmd.Context(), &charactersvc.SetNatalInput{
				CharacterID: flagCharID,
				ItemID:      flagItemID,
			})
			if err != nil {
				return err
			}
			printEvents(out.Events)
			return nil
		})
	},
}

var consumeCmd = &cobra.Command{
	Use:   "consume",
	Short: "Consume items and apply their permanent effects",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.ConsumeItem(cmd.Context(), &charactersvc.ConsumeItemInput{
				CharacterID: flagCharID,
				ItemID:      flagItemID,
				Quantity:    flagQuantity,
			})
			if err != nil {
				return err
			}
			printEvents(out.Events)
			return nil
		})
	},
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show base, equipment, and aggregated stats",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withService(func(svc charactersvc.Service) error {
			out, err := svc.GetStats(cmd.Context(), &charactersvc.GetStatsInput{CharacterID: flagCharID})
			if err != nil {
				return err
			}
			return printJSON(out)
		})
	},
}
