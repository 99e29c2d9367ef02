package evaluators

import "github.com/ahrav/go-adgrader/internal/domain"

func conversionTracking() []*Evaluator {
	c := domain.CategoryConversionTracking
	return []*Evaluator{
		newEvaluator(c, domain.CriterionConversionCoverage, scoreConversionCoverage),
		newEvaluator(c, domain.CriterionConversionImplementation, scoreConversionImplementation),
		newEvaluator(c, domain.CriterionEnhancedConversions, scoreEnhancedConversions),
	}
}

func scoreConversionCoverage(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	ct := s.ConversionTracking
	o.detail("conversion_action_count", ct.ActionCount)
	o.detail("has_phone_call_tracking", ct.HasPhoneCallTracking)
	o.detail("has_imported_conversions", ct.HasImportedConversions)

	switch {
	case ct.ActionCount >= 3 && ct.HasPhoneCallTracking && ct.HasImportedConversions:
		return 95
	case ct.ActionCount >= 2:
		if !ct.HasPhoneCallTracking {
			o.recommend(0.7, "Add phone call conversion tracking so calls driven by ads are credited.")
		}
		if !ct.HasImportedConversions && s.Account.IsEcommerce {
			o.recommend(0.6, "Import offline or CRM conversions to capture sales completed outside the site.")
		}
		return 80
	case ct.ActionCount >= 1:
		o.recommend(0.8, "Only %d conversion action is tracked. Track every meaningful action such as purchases, leads, calls and sign-ups.",
			ct.ActionCount)
		return 60
	default:
		o.recommend(1.0, "No conversion tracking detected. Set up conversion tracking before optimizing anything else.")
		return 20
	}
}

func scoreConversionImplementation(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	ct := s.ConversionTracking
	valued := ratio(ct.ValueTrackingCount, ct.ActionCount)
	o.detail("value_tracking_percentage", valued)

	switch {
	case valued >= 0.8:
		return 90
	case valued >= 0.5:
		o.recommend(0.6, "Only %s of conversion actions carry a value. Assign values to every meaningful conversion.", percent(valued))
		return 75
	case ct.ActionCount > 0:
		o.recommend(0.8, "Most conversion actions carry no value (%s valued). Add conversion values to enable value-based bidding.",
			percent(valued))
		return 50
	default:
		return 0
	}
}

func scoreEnhancedConversions(s *domain.MetricsSnapshot, _ domain.Config, o *outcome) float64 {
	ct := s.ConversionTracking
	o.detail("has_enhanced_conversions", ct.HasEnhancedConversions)
	o.detail("has_data_driven_attribution", ct.HasDataDrivenAttribution)

	switch {
	case ct.HasEnhancedConversions && ct.HasDataDrivenAttribution:
		return 95
	case ct.HasEnhancedConversions || ct.HasDataDrivenAttribution:
		if !ct.HasEnhancedConversions {
			o.recommend(0.7, "Enable enhanced conversions to recover conversions lost to cookie restrictions.")
		}
		if !ct.HasDataDrivenAttribution {
			o.recommend(0.6, "Switch to data-driven attribution so every touchpoint gets credit.")
		}
		return 75
	case ct.ActionCount > 0:
		o.recommend(0.7, "Enable enhanced conversions and data-driven attribution to improve measurement accuracy.")
		return 50
	default:
		return 0
	}
}
