package service

import (
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/model"
	"github.com/Dotlabs-uz/pilavtour-admin/pkg/translate"
)

func tourNode(in *model.TourInput) translate.Node {
	days := make([]translate.Node, len(in.Itinerary))
	for i, d := range in.Itinerary {
		days[i] = translate.Record(map[string]translate.Node{
			"title":               translate.Leaf(d.Title),
			"description":         translate.Leaf(d.Description),
			"accommodation":       translate.Leaves(d.Accommodation),
			"meals":               translate.Leaves(d.Meals),
			"included_activities": translate.Leaves(d.IncludedActivities),
			"optional_activities": translate.Leaves(d.OptionalActivities),
			"special_information": translate.Leaf(d.SpecialInformation),
		})
	}

	return translate.Record(map[string]translate.Node{
		"title":        translate.Leaf(in.Title),
		"description":  translate.Leaf(in.Description),
		"location":     translate.Leaf(in.Location),
		"itinerary":    translate.List(days...),
		"included":     translate.Leaves(in.Inclusions.Included),
		"not_included": translate.Leaves(in.Inclusions.NotIncluded),
	})
}

func assemble(in *model.TourInput, res *translate.Result) *model.Tour {
	itinerary := res.Field("itinerary")
	days := make([]model.ItineraryDay, len(itinerary.Items))
	for i, day := range itinerary.Items {
		days[i] = model.ItineraryDay{
			Title:              day.Field("title").Text,
			Description:        day.Field("description").Text,
			Accommodation:      day.Field("accommodation").Texts(),
			Meals:              day.Field("meals").Texts(),
			IncludedActivities: day.Field("included_activities").Texts(),
			OptionalActivities: day.Field("optional_activities").Texts(),
			SpecialInformation: day.Field("special_information").Text,
		}
	}

	images := in.Images
	if images == nil {
		images = []string{}
	}
	dates := in.Dates
	if dates == nil {
		dates = []model.TourDate{}
	}

	return &model.Tour{
		Title:          res.Field("title").Text,
		Description:    res.Field("description").Text,
		Location:       res.Field("location").Text,
		Price:          in.Price,
		PriceValue:     model.PriceAmount(in.Price),
		Style:          in.Style,
		Duration:       in.Duration,
		Rating:         in.Rating,
		MaxGroupCount:  in.MaxGroupCount,
		Itinerary:      days,
		ItineraryImage: in.ItineraryImage,
		Dates:          dates,
		Inclusions: model.Inclusions{
			Included:    res.Field("included").Texts(),
			NotIncluded: res.Field("not_included").Texts(),
		},
		Images: images,
	}
}
