// Copyright 2026 The zelda-arabic-magic Authors. All rights reserved.
// Use of this source code is governed by the MIT License
// that can be found in the LICENSE file.

package bdat

// builtinNames is the list of table and column identifiers recovered
// from release files.  NewDictionary hashes them once at construction;
// Resolve falls back to a hex placeholder for anything not listed here.
// Names mined later (other regions, community research) are fed in at
// runtime through Dictionary.Extend.
var builtinNames = []string{
	// per-chapter message archives
	"fev01_msg", "fev02_msg", "fev03_msg", "fev04_msg", "fev05_msg",
	"fev06_msg", "fev07_msg", "fev08_msg", "fev09_msg", "fev10_msg",
	"qst01_msg", "qst02_msg", "qst03_msg", "qst04_msg", "qst05_msg",
	"qst06_msg", "qst07_msg", "qst08_msg", "qst09_msg", "qst10_msg",
	"tlk01_msg", "tlk02_msg", "tlk03_msg", "tlk04_msg", "tlk05_msg",
	"tlk06_msg", "tlk07_msg", "tlk08_msg", "tlk09_msg", "tlk10_msg",
	"ht01_msg", "ht02_msg", "ht03_msg", "ht04_msg", "ht05_msg",
	"ht06_msg", "ht07_msg", "ht08_msg", "ht09_msg", "ht10_msg",
	"story01_msg", "story02_msg", "story03_msg", "story04_msg", "story05_msg",
	"story06_msg", "story07_msg", "story08_msg", "story09_msg", "story10_msg",
	"npc01_msg", "npc02_msg", "npc03_msg", "npc04_msg", "npc05_msg",
	"npc06_msg", "npc07_msg", "npc08_msg", "npc09_msg", "npc10_msg",
	"colony01_msg", "colony02_msg", "colony03_msg", "colony04_msg",
	"colony05_msg", "colony06_msg",
	"sys_msg", "menu_msg", "debug_msg", "battle_msg", "shop_msg", "tutorial_msg",

	// menu tables
	"MNU_Name", "MNU_ItemName", "MNU_SkillName", "MNU_ArtName", "MNU_ZoneName",
	"MNU_MapInfo", "MNU_Option", "MNU_Tutorial", "MNU_ShopList", "MNU_Telop",
	"MNU_Caption", "MNU_FileName", "MNU_Help", "MNU_KeyAssign", "MNU_Loading",
	"MNU_SaveList", "MNU_Status", "MNU_Config", "MNU_Credit", "MNU_GameOver",
	"MNU_Achievement", "MNU_Dictionary", "MNU_Recipe", "MNU_Network",
	"MNU_StaffRoll", "MNU_TitleMenu", "MNU_Vibration", "MNU_Brightness",

	// item tables
	"ITM_ItemList", "ITM_WeaponList", "ITM_ArmorList", "ITM_GemList",
	"ITM_CollectionList", "ITM_KeyList", "ITM_FoodList", "ITM_MaterialList",
	"ITM_AccessoryList", "ITM_CrystalList", "ITM_RecipeList",

	// character tables
	"CHR_PlayerList", "CHR_NpcList", "CHR_EnemyList", "CHR_PartyList",
	"CHR_ClassList", "CHR_VoiceList", "CHR_FaceList", "CHR_CostumeList",
	"CHR_PetList",

	// field tables
	"FLD_ZoneList", "FLD_LandmarkList", "FLD_WarpList", "FLD_WeatherList",
	"FLD_GimmickList", "FLD_TreasureList", "FLD_NpcTalkList", "FLD_QuestList",
	"FLD_ShopList", "FLD_CollectionTable", "FLD_FishingList", "FLD_CookingList",

	// battle tables
	"BTL_ArtsList", "BTL_SkillList", "BTL_EnemyDrop", "BTL_BuffList",
	"BTL_DebuffList", "BTL_ChainAttack", "BTL_ComboList", "BTL_AuraList",
	"BTL_ReactionList", "BTL_TargetList",

	// event, quest, gimmick, resource tables
	"EVT_SceneList", "EVT_CastList", "EVT_SubtitleList", "EVT_VoiceList",
	"QST_List", "QST_TaskList", "QST_RewardList", "QST_PurposeList", "QST_ClientList",
	"GMK_DoorList", "GMK_ElevatorList", "GMK_SwitchList", "GMK_TboxList",
	"GMK_WarpList", "GMK_JumpList", "GMK_EventList", "GMK_CollectionList",
	"EN_DropTable", "EN_FamilyList", "EN_SpeciesList",
	"RSC_IconList", "RSC_FontList", "RSC_LayoutList",
	"DLC_ItemList", "DLC_QuestList",

	// text columns
	"name", "name2", "nickname", "title", "subtitle", "caption", "label",
	"label2", "text", "text2", "message", "desc", "desc2", "description",
	"summary", "hint", "hint2", "help", "comment", "info", "word", "talk",
	"talk_normal", "talk_rain", "menu_text", "button_text", "error_text",
	"confirm_text", "yes_text", "no_text",
	"item_name", "item_desc", "skill_name", "skill_desc", "art_name",
	"art_desc", "zone_name", "area_name", "landmark_name", "npc_name",
	"enemy_name", "boss_name", "party_name", "class_name", "quest_title",
	"quest_desc", "quest_summary", "task_text", "reward_text", "shop_name",
	"tutorial_title", "tutorial_text", "load_text", "tips_text", "credit_text",
	"pc_name", "pc_talk", "system_text", "warning_text", "notice_text",
	"unit_name", "group_name",

	// id columns
	"id", "row_id", "item_id", "item_id2", "skill_id", "art_id", "npc_id",
	"enemy_id", "zone_id", "area_id", "quest_id", "task_id", "shop_id",
	"event_id", "scene_id", "cast_id", "msg_id", "text_id", "label_id",
	"icon_id", "model_id", "motion_id", "se_id", "bgm_id", "voice_id",
	"flag_id", "ref_id", "hash_id", "group_id", "category_id",

	// structural columns
	"flag", "flag1", "flag2", "flag3", "flag4", "flag5", "flag6", "flag7",
	"flag8", "sort_key", "sort_id", "index", "order", "priority", "category",
	"type", "sub_type", "kind", "attr", "style", "level", "rank", "rate",
	"ratio", "percent", "weight", "count", "num", "max_num", "min_num",
	"price", "sell_price", "buy_price", "value", "exp", "gold", "sp",

	// parameter columns
	"param1", "param2", "param3", "param4", "param5", "param6", "param7",
	"param8", "param9", "param10", "param11", "param12", "param13", "param14",
	"param15", "param16",
	"value1", "value2", "value3", "value4", "value5", "value6", "value7", "value8",
	"cond1", "cond2", "cond3", "cond4", "cond5", "cond6", "cond7", "cond8",

	// placement columns
	"pos_x", "pos_y", "pos_z", "rot_x", "rot_y", "rot_z",
	"scale_x", "scale_y", "scale_z", "radius", "height", "range",

	// misc columns
	"color_r", "color_g", "color_b", "alpha", "debug_name", "dbg_text",
	"enable", "disable", "visible", "hidden", "lock", "unlock", "new_flag",
	"clear_flag", "chapter", "scenario", "scenario_min", "scenario_max",
	"condition", "probability", "timer", "wait", "speed", "offset", "length",
	"size", "version", "pad", "reserve", "dummy",

	// numbered message and talk columns
	"msg01", "msg02", "msg03", "msg04", "msg05", "msg06", "msg07", "msg08",
	"msg09", "msg10", "msg11", "msg12", "msg13", "msg14", "msg15", "msg16",
	"msg17", "msg18", "msg19", "msg20",
	"talk01", "talk02", "talk03", "talk04", "talk05", "talk06", "talk07",
	"talk08", "talk09", "talk10",
}
